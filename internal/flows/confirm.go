package flows

import "context"

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Confirmed answers every prompt with b. Used when the answer was collected
// up front, e.g. a ?confirm=true parameter or a --yes flag.
func Confirmed(b bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return b, nil })
}
