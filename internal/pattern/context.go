package pattern

// BuildContext carries the per-pattern recursion-depth budget across one
// top-level Pattern.Build call, guaranteeing termination for mutually
// recursive pattern references.
type BuildContext struct {
	stack map[string][]int
}

// NewBuildContext returns an empty BuildContext.
func NewBuildContext() *BuildContext {
	return &BuildContext{stack: make(map[string][]int)}
}

// PushMaxSize records entry into Pattern name's Build with the requested
// maxSize, returning the effective maxSize to use: maxSize itself if the
// per-name stack is empty or maxSize is smaller than the current top,
// otherwise top-1.
func (c *BuildContext) PushMaxSize(name string, maxSize int) int {
	st := c.stack[name]
	effective := maxSize
	if len(st) > 0 && maxSize >= st[len(st)-1] {
		effective = st[len(st)-1] - 1
	}
	c.stack[name] = append(st, effective)
	return effective
}

// PopMaxSize undoes the most recent PushMaxSize for name.
func (c *BuildContext) PopMaxSize(name string) {
	st := c.stack[name]
	c.stack[name] = st[:len(st)-1]
}
