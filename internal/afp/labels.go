package afp

// Labels is an insertion-ordered frame-label table. Setting an existing name
// updates the frame index in place without disturbing the original position;
// merges are destructive, so a later table's entry wins over an earlier one
// of the same name.
type Labels struct {
	names  []string
	frames map[string]int
}

// NewLabels returns an empty label table.
func NewLabels() *Labels {
	return &Labels{frames: make(map[string]int)}
}

// Set records name at the given frame index, overwriting any prior entry.
func (l *Labels) Set(name string, frame int) {
	if _, ok := l.frames[name]; !ok {
		l.names = append(l.names, name)
	}
	l.frames[name] = frame
}

// Get looks up the frame index for name.
func (l *Labels) Get(name string) (int, bool) {
	if l == nil {
		return 0, false
	}
	frame, ok := l.frames[name]
	return frame, ok
}

// Merge folds other into l, later entries overwriting same-named earlier
// ones. A nil other is a no-op.
func (l *Labels) Merge(other *Labels) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		l.Set(name, other.frames[name])
	}
}

// Names returns the label names in insertion order.
func (l *Labels) Names() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Len reports the number of entries.
func (l *Labels) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}

// Triggers is an insertion-ordered mapping from event name to the bytecode
// blobs that run when the event fires.
type Triggers struct {
	events []string
	code   map[string][]Bytecode
}

// NewTriggers returns an empty trigger table.
func NewTriggers() *Triggers {
	return &Triggers{code: make(map[string][]Bytecode)}
}

// Add appends code under the named event, creating the event slot on first
// use.
func (t *Triggers) Add(event string, code ...Bytecode) {
	if _, ok := t.code[event]; !ok {
		t.events = append(t.events, event)
	}
	t.code[event] = append(t.code[event], code...)
}

// Events returns the event names in insertion order.
func (t *Triggers) Events() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.events))
	copy(out, t.events)
	return out
}

// Code returns the bytecode registered for event, in registration order.
func (t *Triggers) Code(event string) []Bytecode {
	if t == nil {
		return nil
	}
	return t.code[event]
}
