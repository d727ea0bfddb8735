package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := RegisterAllianceRequest{
		ID:     4221,
		Name:   "  Rose  ",
		APIKey: " key-123 ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "Rose", req.Name)
	assert.Equal(t, "key-123", req.APIKey)
}

func TestSanitizeStruct_EscapesHTMLInPointerNote(t *testing.T) {
	note := "  war chest <script>alert('x')</script>  "
	req := CreateWithdrawalRequest{
		Recipient: RecipientRequest{Kind: " NATION ", ExternalID: 42},
		Note:      &note,
	}
	SanitizeStruct(&req)

	assert.Contains(t, *req.Note, "&lt;script&gt;")
	assert.NotContains(t, *req.Note, "<script>")
	assert.Equal(t, "NATION", req.Recipient.Kind, "nested structs are sanitized too")
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := AdjustRequest{Resource: "money", Reason: nil}
	SanitizeStruct(&req)
	assert.Nil(t, req.Reason)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID(t *testing.T) {
	valid := []string{"bankrec-1", "REF_002", "a.b.c", "981234"}
	for _, tc := range valid {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}

	invalid := []string{"ref 001", "ref<001>", "ref;DROP", "", "ref\n001"}
	for _, tc := range invalid {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestResourceValidator(t *testing.T) {
	type body struct {
		Resource string `binding:"required,resource"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(&body{Resource: "money"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&body{Resource: "Steel"}))
	assert.Error(t, binding.Validator.ValidateStruct(&body{Resource: "gold"}))
	assert.Error(t, binding.Validator.ValidateStruct(&body{Resource: ""}))
}

func TestRecipientRequest_ToDomain(t *testing.T) {
	r := RecipientRequest{Kind: "ALLIANCE", ExternalID: 9}.ToDomain()
	assert.Equal(t, "ALLIANCE", string(r.Kind))
	assert.Equal(t, int64(9), r.ExternalID)
}
