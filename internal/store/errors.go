package store

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/family-savings/internal/errs"
)

// wrap turns a Firestore error into the errs type the response layer maps.
// NotFound and AlreadyExists name what was looked up.
func wrap(op, what string, err error) error {
	switch status.Code(err) {
	case codes.OK:
		if err == nil {
			return nil
		}
	case codes.NotFound:
		return errs.NewNotFoundError(fmt.Sprintf("%s not found", what))
	case codes.AlreadyExists:
		return errs.NewAlreadyExistsError(fmt.Sprintf("%s already exists", what))
	}
	return errs.NewDatabaseError(op, err)
}

// isNotFound reports whether a Firestore read found no document.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
