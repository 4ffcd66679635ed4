package uowmock

import (
	"context"
	"errors"

	"vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinProposalTxFn func(ctx context.Context, proposalID string, fn func(r uow.Repos, p *proposal.Proposal) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough builds a UoW whose transactions simply run against the given
// repo bundle, with the proposal lookup delegated to Repos.Proposals.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinProposalTxFn: func(ctx context.Context, proposalID string, fn func(r uow.Repos, p *proposal.Proposal) error) error {
			p, err := r.Proposals.GetByProposalIDForUpdate(ctx, proposalID)
			if err != nil {
				return err
			}
			return fn(r, p)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinProposalTx(ctx context.Context, proposalID string, fn func(r uow.Repos, p *proposal.Proposal) error) error {
	if m.WithinProposalTxFn != nil {
		return m.WithinProposalTxFn(ctx, proposalID, fn)
	}
	return errUnimplemented
}
