package shared

import (
	"bytes"
	"encoding/json"
)

// OptionalID 区分请求体中字段缺省、显式 null 与具体 ID
type OptionalID struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON 仅在字段出现时被调用
func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// Cleared 显式传入 null
func (o OptionalID) Cleared() bool {
	return o.Set && o.Value == nil
}
