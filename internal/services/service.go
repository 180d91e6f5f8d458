// Package services holds one service per entity. Services validate
// payloads, drive the repositories and translate store-level failures into
// the domain error taxonomy. They never retry and never suppress an error;
// retry policy belongs to callers.
package services

import (
	"errors"

	"tactical-server/internal/errs"
	"tactical-server/internal/models"
	"tactical-server/internal/validation"

	"gorm.io/gorm"
)

// validate runs a schema over a payload and converts violations into a
// domain validation error.
func validate(schema validation.Schema, payload map[string]interface{}, partial bool) (validation.Normalized, error) {
	normalized, violations := schema.Apply(payload, partial)
	if violations != nil {
		ve := &errs.ValidationError{}
		for _, v := range violations {
			ve.Add(v.Field, v.Reason)
		}
		return nil, ve
	}
	return normalized, nil
}

// translate maps store errors onto the domain taxonomy. uniqueFields names
// the business keys a conflict can collide on, e.g. "agentId", "codename".
func translate(op, resource string, err error, uniqueFields ...string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound(resource, "")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Conflict(resource, uniqueFields...)
	default:
		return errs.Dependency(op, err)
	}
}

// buildUpdates turns a normalized partial payload into a column map for the
// store, converting list and object values to their storable types. Fields
// without a column binding are service-level inputs and are skipped.
func buildUpdates(schema validation.Schema, normalized validation.Normalized) map[string]interface{} {
	updates := make(map[string]interface{}, len(normalized))
	for name, field := range schema.Fields {
		if field.Column == "" || !normalized.Has(name) {
			continue
		}
		switch v := normalized[name].(type) {
		case []string:
			updates[field.Column] = models.StringList(v)
		case map[string]interface{}:
			updates[field.Column] = models.JSONB(v)
		default:
			updates[field.Column] = normalized[name]
		}
	}
	return updates
}
