package cpu

const (
	STACK_LIMIT = 16 // Maximum stack depth
)

// Stack is the subroutine return stack.
type Stack struct {
	Data  [STACK_LIMIT]Address
	Depth int
}

// Push a return address, failing with ErrStackFull at STACK_LIMIT entries.
func (s *Stack) Push(value Address) (err error) {
	if s.Full() {
		err = ErrStackFull
		return
	}

	s.Data[s.Depth] = value
	s.Depth++
	return
}

// Pop the most recent return address, failing with ErrStackEmpty.
func (s *Stack) Pop() (value Address, err error) {
	value, err = s.Peek()
	if err == nil {
		s.Depth--
	}
	return
}

func (s *Stack) Empty() bool {
	return s.Depth == 0
}

func (s *Stack) Full() bool {
	return s.Depth == STACK_LIMIT
}

func (s *Stack) Peek() (value Address, err error) {
	if s.Empty() {
		err = ErrStackEmpty
		return
	}

	value = s.Data[s.Depth-1]
	return
}

// Frames returns the live portion of the stack, oldest first.
func (s *Stack) Frames() []Address {
	return s.Data[:s.Depth]
}

func (s *Stack) Reset() {
	s.Data = [STACK_LIMIT]Address{}
	s.Depth = 0
}
