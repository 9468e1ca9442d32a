package validation

import (
	"strings"

	"github.com/google/uuid"
	v1 "github.com/tapstand/pours/internal/api/v1"
)

// FieldError is one entry of the structured validation failure list
// returned to clients as {"errors":[{field, error}]}.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Rules checks pour submissions against the server-known allow-lists.
// Membership is case-insensitive; stored events keep the submitted casing.
type Rules struct {
	products  map[string]struct{}
	locations map[string]struct{}
	volumes   map[int]struct{}
}

// NewRules builds the allow-list rules from configuration.
func NewRules(products, locations []string, volumesMl []int) *Rules {
	r := &Rules{
		products:  make(map[string]struct{}, len(products)),
		locations: make(map[string]struct{}, len(locations)),
		volumes:   make(map[int]struct{}, len(volumesMl)),
	}
	for _, p := range products {
		r.products[strings.ToLower(p)] = struct{}{}
	}
	for _, l := range locations {
		r.locations[strings.ToLower(l)] = struct{}{}
	}
	for _, v := range volumesMl {
		r.volumes[v] = struct{}{}
	}
	return r
}

// ValidatePour returns the per-field errors for a record-pour request,
// or nil when the request is well-formed. The event store does not
// re-validate; every check the core relies on happens here.
func (r *Rules) ValidatePour(req *v1.RecordPourRequest) []FieldError {
	var errs []FieldError

	if req.EventID == "" {
		errs = append(errs, FieldError{Field: "eventId", Error: "eventId is required."})
	} else if _, err := uuid.Parse(req.EventID); err != nil {
		errs = append(errs, FieldError{Field: "eventId", Error: "eventId must be a valid UUID."})
	}

	if req.DeviceID == "" {
		errs = append(errs, FieldError{Field: "deviceId", Error: "deviceId is required."})
	}

	if req.LocationID == "" {
		errs = append(errs, FieldError{Field: "locationId", Error: "locationId is required."})
	} else if _, ok := r.locations[strings.ToLower(req.LocationID)]; !ok {
		errs = append(errs, FieldError{Field: "locationId", Error: "locationId is not in the allowed list."})
	}

	if req.ProductID == "" {
		errs = append(errs, FieldError{Field: "productId", Error: "productId is required."})
	} else if _, ok := r.products[strings.ToLower(req.ProductID)]; !ok {
		errs = append(errs, FieldError{Field: "productId", Error: "productId is not in the allowed list."})
	}

	if _, ok := r.volumes[req.VolumeMl]; !ok {
		errs = append(errs, FieldError{Field: "volumeMl", Error: "volumeMl is not in the allowed list."})
	}

	if req.StartedAt.IsZero() {
		errs = append(errs, FieldError{Field: "startedAt", Error: "startedAt is required."})
	}
	if req.EndedAt.IsZero() {
		errs = append(errs, FieldError{Field: "endedAt", Error: "endedAt is required."})
	} else if !req.StartedAt.IsZero() && req.EndedAt.Before(req.StartedAt) {
		errs = append(errs, FieldError{Field: "endedAt", Error: "endedAt must be greater than or equal to startedAt."})
	}

	return errs
}
