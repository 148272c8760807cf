// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the wire format from the domain model. Field rules live in
// gin binding tags; rules that span fields are checked by Validate.
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/guttosm/load-optimizer/internal/domain/model"
)

// DateLayout is the calendar-day format used for pickup and delivery dates.
const DateLayout = "2006-01-02"

// TruckRequest describes the truck to load.
//
// @Description Truck capacity constraints
type TruckRequest struct {
	ID            string `json:"id" yaml:"id" binding:"notblank" example:"truck-123"`
	MaxWeightLbs  int    `json:"max_weight_lbs" yaml:"max_weight_lbs" binding:"gt=0" example:"44000" minimum:"1"`
	MaxVolumeCuft int    `json:"max_volume_cuft" yaml:"max_volume_cuft" binding:"gt=0" example:"3000" minimum:"1"`
} // @name TruckRequest

// OrderRequest describes one candidate order.
// PayoutCents is a pointer so a missing value can be told apart from zero.
//
// @Description Candidate order
type OrderRequest struct {
	ID           string `json:"id" yaml:"id" binding:"notblank" example:"ord-001"`
	PayoutCents  *int64 `json:"payout_cents" yaml:"payout_cents" binding:"required,gte=0" example:"250000" minimum:"0"`
	WeightLbs    int    `json:"weight_lbs" yaml:"weight_lbs" binding:"gt=0" example:"18000" minimum:"1"`
	VolumeCuft   int    `json:"volume_cuft" yaml:"volume_cuft" binding:"gt=0" example:"1200" minimum:"1"`
	Origin       string `json:"origin" yaml:"origin" binding:"notblank" example:"Los Angeles, CA"`
	Destination  string `json:"destination" yaml:"destination" binding:"notblank" example:"Dallas, TX"`
	PickupDate   string `json:"pickup_date" yaml:"pickup_date" binding:"datetime=2006-01-02" example:"2025-12-05"`
	DeliveryDate string `json:"delivery_date" yaml:"delivery_date" binding:"datetime=2006-01-02" example:"2025-12-09"`
	IsHazmat     bool   `json:"is_hazmat" yaml:"is_hazmat" example:"false"`
} // @name OrderRequest

// OptimizeRequest is the body of the optimize endpoint.
//
// @Description Truck and candidate orders to optimize
type OptimizeRequest struct {
	Truck  *TruckRequest  `json:"truck" yaml:"truck" binding:"required"`
	Orders []OrderRequest `json:"orders" yaml:"orders" binding:"required,dive"`
} // @name OptimizeRequest

// ValidationError is a single field failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every field failure of a request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Details returns the failures keyed by field path. The first message per field wins.
func (v ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(v))
	for _, e := range v {
		if _, ok := details[e.Field]; !ok {
			details[e.Field] = e.Message
		}
	}
	return details
}

// Fields returns the failing field paths in sorted order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v.Details() {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// AsValidationErrors converts binding failures into field-path errors.
// It reports false for errors that are not validation failures, such as malformed JSON.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}
	verrs = make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		verrs = append(verrs, ValidationError{Field: fieldPath(fe.Namespace()), Message: ruleMessage(fe)})
	}
	return verrs, true
}

// fieldPath drops the root struct name: "OptimizeRequest.orders[0].id" -> "orders[0].id".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed the %s rule", fe.Tag())
	}
}

// Validate checks the binding rules plus the rules that span fields: the order
// count limit, unique order ids and delivery on or after pickup.
// maxOrders <= 0 disables the order count limit.
// The returned error is a ValidationErrors when the request is invalid.
func (r *OptimizeRequest) Validate(maxOrders int) error {
	var errs ValidationErrors
	if err := binding.Validator.ValidateStruct(r); err != nil {
		verrs, ok := AsValidationErrors(err)
		if !ok {
			return err
		}
		errs = verrs
	}
	errs = append(errs, r.crossFieldErrors(maxOrders)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r *OptimizeRequest) crossFieldErrors(maxOrders int) ValidationErrors {
	var errs ValidationErrors
	if maxOrders > 0 && len(r.Orders) > maxOrders {
		errs = append(errs, ValidationError{
			Field:   "orders",
			Message: fmt.Sprintf("must contain at most %d orders, got %d", maxOrders, len(r.Orders)),
		})
	}

	seen := make(map[string]int, len(r.Orders))
	for i, o := range r.Orders {
		if o.ID != "" {
			if first, dup := seen[o.ID]; dup {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("orders[%d].id", i),
					Message: fmt.Sprintf("duplicates orders[%d].id", first),
				})
			} else {
				seen[o.ID] = i
			}
		}

		pickup, pickupErr := time.Parse(DateLayout, o.PickupDate)
		delivery, deliveryErr := time.Parse(DateLayout, o.DeliveryDate)
		if pickupErr == nil && deliveryErr == nil && delivery.Before(pickup) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("orders[%d].delivery_date", i),
				Message: "must be on or after pickup_date",
			})
		}
	}
	return errs
}

// ToLoadRequest validates the request and converts it to the domain model.
// Dates are parsed as UTC calendar days.
func (r *OptimizeRequest) ToLoadRequest(maxOrders int) (model.LoadRequest, error) {
	if err := r.Validate(maxOrders); err != nil {
		return model.LoadRequest{}, err
	}

	req := model.LoadRequest{
		Truck: model.Truck{
			ID: r.Truck.ID,
			Capacity: model.Capacity{
				MaxWeight: r.Truck.MaxWeightLbs,
				MaxVolume: r.Truck.MaxVolumeCuft,
			},
		},
		Orders: make([]model.Order, 0, len(r.Orders)),
	}
	for _, o := range r.Orders {
		pickup, _ := time.Parse(DateLayout, o.PickupDate)
		delivery, _ := time.Parse(DateLayout, o.DeliveryDate)
		req.Orders = append(req.Orders, model.Order{
			ID: o.ID,
			Candidate: model.Candidate{
				Payout:       *o.PayoutCents,
				Weight:       o.WeightLbs,
				Volume:       o.VolumeCuft,
				Origin:       o.Origin,
				Destination:  o.Destination,
				PickupDate:   pickup,
				DeliveryDate: delivery,
				IsHazmat:     o.IsHazmat,
			},
		})
	}
	return req, nil
}
