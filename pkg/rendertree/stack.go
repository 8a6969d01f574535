package rendertree

// scopeStack tracks store indices of the currently open element, component,
// and region frames. Its depth always equals the number of unclosed scopes;
// popping an empty stack means a close call without a matching open, which is
// fatal for the render pass.
type scopeStack struct {
	indices []int
}

func (s *scopeStack) push(i int) {
	s.indices = append(s.indices, i)
}

func (s *scopeStack) pop() int {
	n := len(s.indices)
	if n == 0 {
		contractViolation(CodeScopeUnderflow, "close call with no open element, component, or region")
	}
	i := s.indices[n-1]
	s.indices = s.indices[:n-1]
	return i
}

func (s *scopeStack) peek() (int, bool) {
	if len(s.indices) == 0 {
		return 0, false
	}
	return s.indices[len(s.indices)-1], true
}

func (s *scopeStack) depth() int {
	return len(s.indices)
}

func (s *scopeStack) clear() {
	s.indices = s.indices[:0]
}
