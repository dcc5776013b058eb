package utils

import (
	"html/template"
	"reflect"
	"strings"
	"testing"

	"healbuddy-web/pkg/icons"
)

func TestDefaultTemplateFunc(t *testing.T) {
	funcs := GetTemplateFuncs()
	defaultFunc, ok := funcs["default"].(func(interface{}, interface{}) interface{})
	if !ok {
		t.Fatalf("default func has unexpected signature")
	}

	testCases := []struct {
		name     string
		defaultV interface{}
		value    interface{}
		expected interface{}
	}{
		{"nil value", "fallback", nil, "fallback"},
		{"empty string", "fallback", "", "fallback"},
		{"blank string", "fallback", "   ", "fallback"},
		{"non-empty string", "fallback", "value", "value"},
		{"boolean false", true, false, false},
		{"zero int", 10, 0, 10},
		{"non-zero int", 10, 5, 5},
		{"empty slice", []string{"fallback"}, []string{}, []string{"fallback"}},
	}

	for _, tc := range testCases {
		result := defaultFunc(tc.defaultV, tc.value)
		if !reflect.DeepEqual(result, tc.expected) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, result)
		}
	}
}

func TestDictTemplateFunc(t *testing.T) {
	funcs := GetTemplateFuncs()
	dict, ok := funcs["dict"].(func(...interface{}) map[string]interface{})
	if !ok {
		t.Fatalf("dict func has unexpected signature")
	}

	got := dict("Title", "Chat", "Active", true, "dangling")
	if len(got) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(got), got)
	}
	if got["Title"] != "Chat" || got["Active"] != true {
		t.Errorf("unexpected dict contents: %v", got)
	}
}

func TestIconTemplateFunc(t *testing.T) {
	funcs := GetTemplateFuncs()
	iconFunc, ok := funcs["icon"].(func(interface{}, string) template.HTML)
	if !ok {
		t.Fatalf("icon func has unexpected signature")
	}

	byName := iconFunc(icons.Phone, "w-4 h-4")
	byString := iconFunc("phone", "w-4 h-4")
	if byName != byString {
		t.Errorf("expected typed and string names to render the same markup")
	}
	if !strings.HasPrefix(string(byName), "<svg") {
		t.Errorf("expected svg markup, got %q", byName)
	}
	if iconFunc("unknown", "") != "" {
		t.Errorf("expected unknown icon to render nothing")
	}
	if iconFunc(42, "") != "" {
		t.Errorf("expected unsupported name type to render nothing")
	}
}
