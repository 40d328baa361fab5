package booking

import (
	"strconv"
	"strings"

	"stayadmin/models"
)

// Normalize maps one raw booking record from the remote API into the
// canonical Reservation shape. The server is inconsistent across endpoints,
// so every observed variant is handled here and nowhere else.
//
// Precedence order:
//   - accommodation id: `accomodation_id`, then nested `accomodation.id`
//   - accommodation name: `accomodation` (string), then `accommodation`
//   - address: `accomodation_address`, then `address`
//   - guest name: `user`
//   - status: lowercased; total_amount defaults to 0; guests defaults to 1
//
// Guest email is never present in booking responses.
func Normalize(raw map[string]any) models.Reservation {
	r := models.Reservation{
		ID:          asString(raw["id"]),
		GuestName:   asString(raw["user"]),
		CheckIn:     asString(raw["check_in_date"]),
		CheckOut:    asString(raw["check_out_date"]),
		Status:      strings.ToLower(asString(raw["status"])),
		TotalAmount: asFloat(raw["total_amount"]),
		Guests:      1,
		UserID:      asString(raw["user_id"]),
	}

	if id := asString(raw["accomodation_id"]); id != "" {
		r.AccommodationID = id
	} else if nested, ok := raw["accomodation"].(map[string]any); ok {
		r.AccommodationID = asString(nested["id"])
	}

	if name, ok := raw["accomodation"].(string); ok && name != "" {
		r.AccommodationName = name
	} else if name := asString(raw["accommodation"]); name != "" {
		r.AccommodationName = name
	}

	if addr := asString(raw["accomodation_address"]); addr != "" {
		r.Address = addr
	} else {
		r.Address = asString(raw["address"])
	}

	if guests := asInt(raw["guests"]); guests > 0 {
		r.Guests = guests
	}
	return r
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; ids are integral in practice.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, _ := strconv.Atoi(t)
		return n
	default:
		return 0
	}
}
