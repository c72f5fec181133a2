package pointer

// Observed wraps a Driver and reports every action that succeeded.
type Observed struct {
	Driver
	OnAction func(Action)
}

// Observe returns d decorated with fn. fn runs on the caller's goroutine
// after the underlying call returns without error.
func Observe(d Driver, fn func(Action)) *Observed {
	return &Observed{Driver: d, OnAction: fn}
}

func (o *Observed) notify(a Action, err error) error {
	if err == nil && o.OnAction != nil {
		o.OnAction(a)
	}
	return err
}

func (o *Observed) Move(x, y int) error {
	return o.notify(Action{Kind: ActionMove, X: x, Y: y}, o.Driver.Move(x, y))
}

func (o *Observed) Down(b Button) error {
	return o.notify(Action{Kind: ActionDown, Button: b}, o.Driver.Down(b))
}

func (o *Observed) Up(b Button) error {
	return o.notify(Action{Kind: ActionUp, Button: b}, o.Driver.Up(b))
}

func (o *Observed) Click(b Button) error {
	return o.notify(Action{Kind: ActionClick, Button: b}, o.Driver.Click(b))
}

func (o *Observed) DoubleClick(b Button) error {
	return o.notify(Action{Kind: ActionDoubleClick, Button: b}, o.Driver.DoubleClick(b))
}

func (o *Observed) Scroll(amount int) error {
	return o.notify(Action{Kind: ActionScroll, Amount: amount}, o.Driver.Scroll(amount))
}
