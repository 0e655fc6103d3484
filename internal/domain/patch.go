package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

func (e Employee) ForUpdate() EmployeeForUpdate {
	return EmployeeForUpdate{Name: e.Name, Age: e.Age, Position: e.Position}
}

// Patch applies an RFC 6902 document to e. Operations that cannot be applied
// and results that do not fit EmployeeForUpdate are reported as a
// ValidationError; the result itself is not validated.
func (e EmployeeForUpdate) Patch(patch jsonpatch.Patch) (patched EmployeeForUpdate, err error) {
	doc, err := json.Marshal(e)
	if err != nil {
		return
	}
	doc, err = patch.Apply(doc)
	if err != nil {
		err = &ValidationError{Details: []string{fmt.Sprintf("patch: %s", err)}}
		return
	}
	decoder := json.NewDecoder(bytes.NewReader(doc))
	decoder.DisallowUnknownFields()
	err = decoder.Decode(&patched)
	if err != nil {
		err = &ValidationError{Details: []string{fmt.Sprintf("patch: %s", err)}}
	}
	return
}
