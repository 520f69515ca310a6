package aggregates

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/shop-backend/internal/data/repos"
	domainagg "github.com/yungbote/shop-backend/internal/domain/aggregates"
	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/pkg/dbctx"
)

type MemberAggregateDeps struct {
	Base BaseDeps

	Members repos.MemberRepo
}

type memberAggregate struct {
	deps MemberAggregateDeps
}

func NewMemberAggregate(deps MemberAggregateDeps) domainagg.MemberAggregate {
	deps.Base = deps.Base.withDefaults()
	return &memberAggregate{deps: deps}
}

func (a *memberAggregate) Contract() domainagg.Contract {
	return domainagg.MemberAggregateContract
}

func (a *memberAggregate) Register(ctx context.Context, in domainagg.RegisterMemberInput) (domainagg.RegisterMemberResult, error) {
	op := a.Contract().Op("Register")
	var out domainagg.RegisterMemberResult

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "member name is required", nil)
	}
	if a.deps.Members == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "member repo not configured", nil)
	}
	duplicate := func() error {
		return domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("member %q already exists", name), types.ErrDuplicateMember)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		existing, err := a.deps.Members.FindByName(dbc, name)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return duplicate()
		}

		member := &types.Member{Name: name, Address: in.Address}
		if _, err := a.deps.Members.Create(dbc, member); err != nil {
			// a concurrent registration won the race past the lookup
			if isUniqueViolation(err) {
				return duplicate()
			}
			return err
		}
		out.MemberID = member.ID
		return nil
	})
	return out, err
}
