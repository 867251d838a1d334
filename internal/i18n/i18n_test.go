// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import "testing"

func TestT_English(t *testing.T) {
	Init("en")
	if got := T("api.register_success"); got != "registration successful" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestT_Chinese(t *testing.T) {
	Init("zh")
	if got := T("api.register_success"); got != "注册成功" {
		t.Fatalf("unexpected translation: %q", got)
	}
	if got := T("api.invalid_credentials"); got != "用户名或密码错误" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestT_UnknownIDFallsBackToID(t *testing.T) {
	Init("en")
	if got := T("api.no_such_message"); got != "api.no_such_message" {
		t.Fatalf("expected message ID fallback, got %q", got)
	}
}

func TestT_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("xx")
	if got := T("api.login_success"); got != "login successful" {
		t.Fatalf("expected English fallback, got %q", got)
	}
}

func TestSetLang_Switches(t *testing.T) {
	Init("en")
	SetLang("zh")
	if got := T("api.login_success"); got != "登录成功" {
		t.Fatalf("expected Chinese after SetLang, got %q", got)
	}
	SetLang("en")
	if got := T("api.login_success"); got != "login successful" {
		t.Fatalf("expected English after SetLang back, got %q", got)
	}
}

func TestAllMessageIDsPresentInBothCatalogs(t *testing.T) {
	ids := []string{
		"api.register_success", "api.register_error", "api.fields_required",
		"api.username_taken", "api.login_success", "api.login_error",
		"api.invalid_credentials", "api.quote_added", "api.quote_add_error",
		"api.quote_fields_required", "api.quote_list_error",
		"api.token_missing", "api.token_malformed", "api.token_invalid",
		"api.not_found", "api.internal_error",
	}
	for _, lang := range []string{"en", "zh"} {
		Init(lang)
		for _, id := range ids {
			if got := T(id); got == id {
				t.Errorf("missing %s translation for %q", lang, id)
			}
		}
	}
}
