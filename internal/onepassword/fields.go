package onepassword

import (
	"fmt"
	"strings"
)

// Field types understood by op assignment statements.
const (
	FieldConcealed = "concealed"
	FieldURL       = "url"
	FieldOTP       = "otp"
	FieldText      = "text"
)

// Field is one label/value pair destined for an item.
type Field struct {
	Label string
	Value string
}

// InferFieldType picks the op field type for a label. Matching is
// case-insensitive and the first rule wins: password, secret or key mean
// concealed; url means url; otp or totp mean otp; anything else is text.
func InferFieldType(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "password"), strings.Contains(l, "secret"), strings.Contains(l, "key"):
		return FieldConcealed
	case strings.Contains(l, "url"):
		return FieldURL
	case strings.Contains(l, "otp"), strings.Contains(l, "totp"):
		return FieldOTP
	default:
		return FieldText
	}
}

// FieldAssignment renders label[type]=value.
func FieldAssignment(label, value string) string {
	return fmt.Sprintf("%s[%s]=%s", label, InferFieldType(label), value)
}
