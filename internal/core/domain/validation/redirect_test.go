package validation

import "testing"

func TestConfirmRedirect(t *testing.T) {
	tok := Token("01DPT9QAZ6N0FJX21A86FRCWB3:8c652f8566ba53bd8cf0b1b9")
	r := ConfirmRedirect("https://example.it/confirm", tok, "a@b.com")

	if r.Kind != RedirectConfirm {
		t.Fatalf("unexpected kind: %s", r.Kind)
	}
	// e-mail is base64url without padding
	want := "https://example.it/confirm?token=01DPT9QAZ6N0FJX21A86FRCWB3:8c652f8566ba53bd8cf0b1b9&email=YUBiLmNvbQ"
	if r.URL != want {
		t.Fatalf("unexpected URL: %s", r.URL)
	}
}

func TestSuccessRedirect(t *testing.T) {
	r := SuccessRedirect("https://example.it/cb")
	if r.Kind != RedirectSuccess || r.URL != "https://example.it/cb?result=success" {
		t.Fatalf("unexpected redirect: %+v", r)
	}
}

func TestFailureRedirect(t *testing.T) {
	codes := []ErrorCode{CodeGenericError, CodeInvalidToken, CodeTokenExpired, CodeEmailAlreadyTaken}
	for _, code := range codes {
		r := FailureRedirect("https://example.it/cb", code)
		if r.Kind != RedirectFailure || r.Code != code {
			t.Fatalf("unexpected redirect: %+v", r)
		}
		want := "https://example.it/cb?result=failure&error=" + string(code)
		if r.URL != want {
			t.Fatalf("unexpected URL: %s", r.URL)
		}
	}
}
