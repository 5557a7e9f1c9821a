package utils

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// PrettyJson serializa o valor com indentação. Aceita também []byte já serializado.
func PrettyJson(in any) (string, error) {
	var buffer []byte
	var err error

	if reflect.TypeOf(in) != reflect.TypeOf([]byte{}) {
		buffer, err = json.Marshal(in)
		if err != nil {
			return "", err
		}
	} else {
		buffer = in.([]byte)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buffer, "", "\t"); err != nil {
		return "", err
	}

	return out.String(), nil
}
