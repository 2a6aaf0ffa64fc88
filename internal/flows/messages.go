package flows

import (
	"errors"

	"github.com/skingford/book-web/internal/domain"
)

const (
	MsgInvalid       = "Please correct the highlighted fields."
	MsgRetry         = "Something went wrong while saving. Please try again."
	MsgNotFound      = "This item no longer exists."
	MsgCascade       = "The bookmarks of this category could not be deleted, so the category was kept. Please try again."
	MsgDeclined      = "Deletion cancelled."
	MsgUnknownParent = "The selected category does not exist."
)

// failure maps an error to the Failed state shown to the user.
// Raw store text stays in Err.
func failure(err error) Failed {
	var (
		verr    *domain.ValidationError
		cascade *domain.CascadeError
	)

	switch {
	case errors.As(err, &verr):
		return Failed{Message: MsgInvalid, Fields: verr.Fields, Err: err}
	case errors.As(err, &cascade):
		return Failed{Message: MsgCascade, Err: err}
	case errors.Is(err, domain.ErrDeclined):
		return Failed{Message: MsgDeclined, Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return Failed{Message: MsgNotFound, Err: err}
	case errors.Is(err, domain.ErrForeignKey):
		return Failed{
			Message: MsgUnknownParent,
			Fields:  []domain.FieldError{{Field: "category_id", Message: MsgUnknownParent}},
			Err:     err,
		}
	default:
		return Failed{Message: MsgRetry, Err: err}
	}
}
