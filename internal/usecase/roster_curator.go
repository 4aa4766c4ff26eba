package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-sync/internal/domain/player"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
)

// RosterCurator applies manual team/player edits. Every manual edit sets
// PreventUnlink so later roster passes do not undo the curated edge set.
type RosterCurator struct {
	store  Store
	logger *logging.Logger
}

func NewRosterCurator(store Store, logger *logging.Logger) *RosterCurator {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterCurator{store: store, logger: logger.Named("curator")}
}

func (c *RosterCurator) LinkPlayer(ctx context.Context, teamID, playerID int64) (result player.Player, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterCurator.LinkPlayer")
	defer func() { endSpan(span, err) }()

	err = c.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		p, err := curatedPair(ctx, repos, teamID, playerID)
		if err != nil {
			return err
		}
		if err := repos.Players.LinkTeam(ctx, teamID, playerID); err != nil {
			return fmt.Errorf("link player=%d to team=%d: %w", playerID, teamID, err)
		}
		result, err = markPreventUnlink(ctx, repos.Players, p, true)
		return err
	})
	if err != nil {
		return player.Player{}, err
	}
	c.logger.InfoContext(ctx, "team player linked manually", "team_id", teamID, "player_id", playerID)
	return result, nil
}

func (c *RosterCurator) UnlinkPlayer(ctx context.Context, teamID, playerID int64) (result player.Player, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterCurator.UnlinkPlayer")
	defer func() { endSpan(span, err) }()

	err = c.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		p, err := curatedPair(ctx, repos, teamID, playerID)
		if err != nil {
			return err
		}
		if err := repos.Players.UnlinkTeam(ctx, teamID, playerID); err != nil {
			return fmt.Errorf("unlink player=%d from team=%d: %w", playerID, teamID, err)
		}
		result, err = markPreventUnlink(ctx, repos.Players, p, true)
		return err
	})
	if err != nil {
		return player.Player{}, err
	}
	c.logger.InfoContext(ctx, "team player unlinked manually", "team_id", teamID, "player_id", playerID)
	return result, nil
}

func (c *RosterCurator) SetPreventUnlink(ctx context.Context, playerID int64, prevent bool) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterCurator.SetPreventUnlink")
	defer func() { endSpan(span, err) }()

	err = c.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		p, found, err := repos.Players.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player=%d: %w", playerID, err)
		}
		if !found {
			return fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
		}
		_, err = markPreventUnlink(ctx, repos.Players, p, prevent)
		return err
	})
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "prevent unlink updated", "player_id", playerID, "prevent_unlink", prevent)
	return nil
}

func curatedPair(ctx context.Context, repos Repositories, teamID, playerID int64) (player.Player, error) {
	if teamID <= 0 || playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: team and player id are required", ErrInvalidInput)
	}
	if _, found, err := repos.Teams.GetByID(ctx, teamID); err != nil {
		return player.Player{}, fmt.Errorf("get team=%d: %w", teamID, err)
	} else if !found {
		return player.Player{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	p, found, err := repos.Players.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player=%d: %w", playerID, err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return p, nil
}

func markPreventUnlink(ctx context.Context, repo player.Repository, p player.Player, prevent bool) (player.Player, error) {
	if p.PreventUnlink == prevent {
		return p, nil
	}
	if err := repo.SetPreventUnlink(ctx, p.ID, prevent); err != nil {
		return player.Player{}, fmt.Errorf("update player=%d: %w", p.ID, err)
	}
	p.PreventUnlink = prevent
	return p, nil
}
