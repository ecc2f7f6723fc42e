package services

import (
	"errors"
	"testing"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/pkg/helpers"
)

func TestDirectiveServiceEncryptsContact(t *testing.T) {
	s := newServices()
	s.db.addChild("c1", "p1")
	ctx := helpers.TestCtx()

	req := dto.DirectiveRequest{GuardianName: "Yusuf", GuardianContact: "yusuf@example.com", Instructions: "Fund university"}
	rec, err := s.directives.Set(ctx, "p1", "c1", req)
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if rec.GuardianContact != req.GuardianContact {
		t.Fatalf("response contact = %q, want plaintext", rec.GuardianContact)
	}
	stored := s.db.directives["c1"]
	if stored == nil || stored.GuardianContact == req.GuardianContact {
		t.Fatalf("contact stored unencrypted: %+v", stored)
	}

	got, err := s.directives.Get(ctx, "p1", "c1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.GuardianContact != req.GuardianContact || got.Instructions != req.Instructions {
		t.Fatalf("unexpected directive: %+v", got)
	}
}

func TestDirectiveServiceGetMissing(t *testing.T) {
	s := newServices()
	s.db.addChild("c1", "p1")

	var nf *errs.NotFoundError
	if _, err := s.directives.Get(helpers.TestCtx(), "p1", "c1"); !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestDirectiveServiceEncryptFailure(t *testing.T) {
	s := newServices()
	s.db.addChild("c1", "p1")
	s.directives.Cipher = rot13Cipher{fail: errs.NewEncryptionError(errors.New("kms down"))}

	var encErr *errs.EncryptionError
	_, err := s.directives.Set(helpers.TestCtx(), "p1", "c1", dto.DirectiveRequest{GuardianName: "a", GuardianContact: "b", Instructions: "c"})
	if !errors.As(err, &encErr) {
		t.Fatalf("err = %v, want EncryptionError", err)
	}
	if len(s.db.directives) != 0 {
		t.Fatalf("directive stored after encryption failure")
	}
}
