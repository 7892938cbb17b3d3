package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// duplicateIndexRe matches the index name inside a Mongo E11000 diagnostic,
// e.g. "... index: username_1 dup key: ...". The trailing _<direction> suffix
// is stripped to recover the field name.
var duplicateIndexRe = regexp.MustCompile(`index: (\w+?)_-?1`)

// asConflict converts a duplicate-key write error into a domain ConflictError,
// extracting the offending field from the driver diagnostic when possible.
// Non-duplicate errors are returned unchanged.
func asConflict(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	conflict := &domain.ConflictError{}
	if m := duplicateIndexRe.FindStringSubmatch(err.Error()); m != nil {
		conflict.Field = m[1]
	}
	return conflict
}
