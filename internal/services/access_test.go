package services

import (
	"context"
	"testing"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

type ownedStub uint

func (o ownedStub) OwnerID() uint { return uint(o) }

func Test_Authorize_Order(t *testing.T) {
	ctx := context.Background()
	owner := &models.Identity{UserID: 1}
	stranger := &models.Identity{UserID: 2}

	loads := 0
	found := func(context.Context) (ownedStub, error) {
		loads++
		return ownedStub(1), nil
	}
	missing := func(context.Context) (ownedStub, error) {
		loads++
		return 0, errorx.ErrPostNotFound
	}

	testCases := []struct {
		name   string
		caller *models.Identity
		op     Operation
		load   func(context.Context) (ownedStub, error)
		kind   errorx.Kind
		loaded bool
		ok     bool
	}{
		{name: "anonymous read", caller: nil, op: OpRead, load: found, loaded: true, ok: true},
		{name: "anonymous write", caller: nil, op: OpWrite, load: found, kind: errorx.Unauthorized},
		{name: "anonymous write on missing", caller: nil, op: OpWrite, load: missing, kind: errorx.Unauthorized},
		{name: "stranger write on missing", caller: stranger, op: OpWrite, load: missing, kind: errorx.NotFound, loaded: true},
		{name: "stranger write", caller: stranger, op: OpWrite, load: found, kind: errorx.Forbidden, loaded: true},
		{name: "stranger read", caller: stranger, op: OpRead, load: found, loaded: true, ok: true},
		{name: "owner write", caller: owner, op: OpWrite, load: found, loaded: true, ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loads = 0
			target, err := Authorize(ctx, ContentPolicy, tc.caller, tc.op, tc.load)
			require.Equal(t, tc.loaded, loads == 1)
			if tc.ok {
				require.NoError(t, err)
				require.Equal(t, ownedStub(1), target)
				return
			}
			require.Error(t, err)
			require.Equal(t, tc.kind, errorx.KindOf(err))
		})
	}
}

func Test_Policy_Check(t *testing.T) {
	caller := &models.Identity{UserID: 7}

	require.NoError(t, CatalogPolicy.Check(nil, OpRead))
	require.True(t, errorx.Is(CatalogPolicy.Check(nil, OpWrite), errorx.Unauthorized))
	require.NoError(t, CatalogPolicy.Check(caller, OpWrite))

	require.True(t, errorx.Is(MemberPolicy.Check(nil, OpRead), errorx.Unauthorized))
	require.NoError(t, MemberPolicy.Check(caller, OpRead))
}
