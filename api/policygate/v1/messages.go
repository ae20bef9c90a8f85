package policygatev1

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMissingTask is returned when a Check request has no "task" field.
var ErrMissingTask = errors.New("missing task")

// CheckRequest is the payload of a Check call.
type CheckRequest struct {
	Task         string
	Jurisdiction string
}

// CheckResponse is the result of a Check call.
type CheckResponse struct {
	CheckID      string
	Compliant    bool
	Violations   []string
	Jurisdiction string
	Sensitive    []string
}

// ToStruct encodes the request.
func (r CheckRequest) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"task":         structpb.NewStringValue(r.Task),
		"jurisdiction": structpb.NewStringValue(r.Jurisdiction),
	}}
}

// DecodeCheckRequest validates and decodes a Check request. An empty task
// is valid; an absent or non-string task is not.
func DecodeCheckRequest(s *structpb.Struct) (CheckRequest, error) {
	fields := s.GetFields()
	task, ok := fields["task"]
	if !ok {
		return CheckRequest{}, ErrMissingTask
	}
	if _, isString := task.GetKind().(*structpb.Value_StringValue); !isString {
		return CheckRequest{}, fmt.Errorf("task must be a string")
	}
	return CheckRequest{
		Task:         task.GetStringValue(),
		Jurisdiction: fields["jurisdiction"].GetStringValue(),
	}, nil
}

// ToStruct encodes the response.
func (r CheckResponse) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"check_id":     structpb.NewStringValue(r.CheckID),
		"compliant":    structpb.NewBoolValue(r.Compliant),
		"violations":   stringList(r.Violations),
		"jurisdiction": structpb.NewStringValue(r.Jurisdiction),
		"sensitive":    stringList(r.Sensitive),
	}}
}

// DecodeCheckResponse decodes a Check response.
func DecodeCheckResponse(s *structpb.Struct) CheckResponse {
	fields := s.GetFields()
	return CheckResponse{
		CheckID:      fields["check_id"].GetStringValue(),
		Compliant:    fields["compliant"].GetBoolValue(),
		Violations:   fromList(fields["violations"]),
		Jurisdiction: fields["jurisdiction"].GetStringValue(),
		Sensitive:    fromList(fields["sensitive"]),
	}
}

// EncodeRules encodes tier label to rules.
func EncodeRules(rules map[string][]string) *structpb.Struct {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(rules))}
	for tier, list := range rules {
		out.Fields[tier] = stringList(list)
	}
	return out
}

// DecodeRules decodes a Rules response.
func DecodeRules(s *structpb.Struct) map[string][]string {
	out := make(map[string][]string, len(s.GetFields()))
	for tier, v := range s.GetFields() {
		out[tier] = fromList(v)
	}
	return out
}

func stringList(list []string) *structpb.Value {
	values := make([]*structpb.Value, len(list))
	for i, s := range list {
		values[i] = structpb.NewStringValue(s)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func fromList(v *structpb.Value) []string {
	values := v.GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for _, item := range values {
		out = append(out, item.GetStringValue())
	}
	return out
}
