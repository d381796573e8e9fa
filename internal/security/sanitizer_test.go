package security

import "testing"

// scriptタグが除去されることを検証
func TestTextSanitizer_RemovesScriptTags(t *testing.T) {
	s := NewTextSanitizer()

	got := s.Sanitize(`Please ring the bell twice.<script>alert("xss")</script>`)
	want := "Please ring the bell twice."
	if got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}

// 許可タグを含むすべてのHTMLタグが除去されることを検証
func TestTextSanitizer_RemovesAllTags(t *testing.T) {
	s := NewTextSanitizer()

	got := s.Sanitize(`<p>Great <strong>service</strong></p>`)
	want := "Great service"
	if got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}

// プレーンテキストがそのまま通過することを検証
func TestTextSanitizer_PassesPlainText(t *testing.T) {
	s := NewTextSanitizer()

	input := "Looking forward to the session."
	if got := s.Sanitize(input); got != input {
		t.Errorf("Sanitize() = %q, want %q", got, input)
	}
}

// 空文字列の入力には空文字列を返すことを検証
func TestTextSanitizer_EmptyInput(t *testing.T) {
	s := NewTextSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

// 冪等性を検証: サニタイズ済みの出力を再度サニタイズしても変化しない
func TestTextSanitizer_Idempotent(t *testing.T) {
	s := NewTextSanitizer()

	once := s.Sanitize(`<img src=x onerror=alert(1)>Note & details`)
	twice := s.Sanitize(once)
	if once != twice {
		t.Errorf("Sanitize not idempotent: %q != %q", once, twice)
	}
}
