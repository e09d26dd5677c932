package validation

import (
	"testing"
	"time"
)

func TestParseToken(t *testing.T) {
	valid := "01DPT9QAZ6N0FJX21A86FRCWB3:8c652f8566ba53bd8cf0b1b9"
	if _, err := ParseToken(valid); err != nil {
		t.Fatalf("unexpected error for valid token: %v", err)
	}

	invalid := []string{
		"",
		"no-colon",
		"01DPT9QAZ6N0FJX21A86FRCWB3",
		"short:8c652f8566ba53bd8cf0b1b9",
		"01DPT9QAZ6N0FJX21A86FRCWB3:8c652f8566ba53bd8cf0b1b", // 23 hex chars
		"01DPT9QAZ6N0FJX21A86FRCWB3:zz652f8566ba53bd8cf0b1b9",
		"01DPT9QAZ6N0FJX21A86FRCWB-:8c652f8566ba53bd8cf0b1b9",
	}
	for _, raw := range invalid {
		if _, err := ParseToken(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestTokenSplitAndValidatorHash(t *testing.T) {
	tok := Token("01DPT9QAZ6N0FJX21A86FRCWB3:8c652f8566ba53bd8cf0b1b9")

	id, validator := tok.Split()
	if id != "01DPT9QAZ6N0FJX21A86FRCWB3" || validator != "8c652f8566ba53bd8cf0b1b9" {
		t.Fatalf("unexpected split: %q %q", id, validator)
	}

	// sha256 of the validator part, lowercase hex
	want := "026c47ead971b9af13353f5d5e563982ebca542f8df3246bdaf1f86e16075072"
	if got := tok.ValidatorHash(); got != want {
		t.Fatalf("unexpected validator hash: %s", got)
	}
}

func TestDecodeTokenRecord(t *testing.T) {
	raw := []byte(`{"email":"a@b.com","fiscal_code":"SPNDNL80A13Y555X","invalid_after":"2030-01-01T00:00:00Z"}`)
	rec, err := DecodeTokenRecord(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Email != "a@b.com" || rec.FiscalCode != "SPNDNL80A13Y555X" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.InvalidAfter.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected expiry: %v", rec.InvalidAfter)
	}

	invalid := [][]byte{
		[]byte(`not json`),
		[]byte(`{"email":42}`),
		[]byte(`{"fiscal_code":"SPNDNL80A13Y555X","invalid_after":"2030-01-01T00:00:00Z"}`),
		[]byte(`{"email":"a@b.com","invalid_after":"2030-01-01T00:00:00Z"}`),
		[]byte(`{"email":"a@b.com","fiscal_code":"SPNDNL80A13Y555X"}`),
	}
	for _, raw := range invalid {
		if _, err := DecodeTokenRecord(raw); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestParseFlowChoice(t *testing.T) {
	if fc, err := ParseFlowChoice("CONFIRM"); err != nil || fc != FlowConfirm {
		t.Fatalf("unexpected result: %v %v", fc, err)
	}
	if fc, err := ParseFlowChoice("VALIDATE"); err != nil || fc != FlowValidate {
		t.Fatalf("unexpected result: %v %v", fc, err)
	}
	for _, raw := range []string{"", "validate", "MAYBE"} {
		if _, err := ParseFlowChoice(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
