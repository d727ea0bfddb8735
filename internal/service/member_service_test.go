package service

import (
	"context"
	"testing"

	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMemberService(t *testing.T) ports.MemberService {
	store := newMemStore()
	require.NoError(t, memAlliances{store}.Upsert(context.Background(), &domain.Alliance{ID: testAllianceID, Name: "Rose"}))
	return NewMemberService(memMembers{store}, memAlliances{store}, zerolog.Nop())
}

func TestMemberService_Register(t *testing.T) {
	svc := setupMemberService(t)
	ctx := context.Background()

	m, err := svc.Register(ctx, ports.RegisterMemberRequest{DiscordID: " 4242 ", NationID: 77, AllianceID: testAllianceID})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, "4242", m.DiscordID)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.NationID, got.NationID)

	byDiscord, err := svc.GetByDiscordID(ctx, "4242")
	require.NoError(t, err)
	assert.Equal(t, m.ID, byDiscord.ID)
}

func TestMemberService_Register_Errors(t *testing.T) {
	svc := setupMemberService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterMemberRequest{DiscordID: "1", NationID: 1, AllianceID: testAllianceID})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  ports.RegisterMemberRequest
		code string
	}{
		{"duplicate discord id", ports.RegisterMemberRequest{DiscordID: "1", NationID: 2, AllianceID: testAllianceID}, "CON_004"},
		{"missing discord id", ports.RegisterMemberRequest{NationID: 2, AllianceID: testAllianceID}, "VAL_005"},
		{"bad nation", ports.RegisterMemberRequest{DiscordID: "2", AllianceID: testAllianceID}, "VAL_005"},
		{"unknown alliance", ports.RegisterMemberRequest{DiscordID: "2", NationID: 2, AllianceID: 1}, "RES_001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			requireCode(t, err, tt.code)
		})
	}
}

func TestMemberService_NotFound(t *testing.T) {
	svc := setupMemberService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, uuid.New())
	requireCode(t, err, "RES_001")
	_, err = svc.GetByDiscordID(ctx, "nobody")
	requireCode(t, err, "RES_001")
}
