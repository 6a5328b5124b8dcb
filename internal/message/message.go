package message

import "fmt"

const prefix = "Containers rule! Slept for "

// Format renders the line printed after each sleep. v is written with its
// default text form, so both 1500 and "1500" yield the same message.
func Format(v any) string {
	return fmt.Sprintf("%s%vms", prefix, v)
}
