package reconciler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/models"
)

// SaveProfessions writes every valid profession of character and removes
// primary professions the character no longer reports. Secondary skills
// are never removed.
func (r *Reconciler) SaveProfessions(ctx context.Context, character string, professions []*models.Profession) error {
	reported := make(map[string]bool, len(professions))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range professions {
		if !p.IsValid() {
			r.stats.dropped.Add(1)
			continue
		}
		reported[p.Name()] = true
		g.Go(func() error {
			if err := r.node(constants.NodeProfessions, p.Name(), character).Set(gctx, p.Level()); err != nil {
				return err
			}
			r.stats.professionsSaved.Add(1)
			return nil
		})
	}

	for _, name := range models.PrimaryProfessions() {
		if reported[name] {
			continue
		}
		g.Go(func() error {
			return r.dropProfession(gctx, name, character)
		})
	}
	return g.Wait()
}

// dropProfession removes professions/<name>/<character> when it holds a level.
func (r *Reconciler) dropProfession(ctx context.Context, name, character string) error {
	ref := r.node(constants.NodeProfessions, name, character)
	stored, err := ref.Read(ctx)
	if err != nil {
		return err
	}
	level, ok := stored.Int()
	if !ok || level <= 0 {
		return nil
	}
	if err := ref.Remove(ctx); err != nil {
		return err
	}
	r.stats.professionsRemoved.Add(1)
	return nil
}

// SaveReputations writes every valid reputation of character.
func (r *Reconciler) SaveReputations(ctx context.Context, character string, reputations []*models.Reputation) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, rep := range reputations {
		if !rep.IsValid() {
			r.stats.dropped.Add(1)
			continue
		}
		g.Go(func() error {
			if err := r.node(constants.NodeReputations, rep.Name(), character).Set(gctx, rep.Level()); err != nil {
				return err
			}
			r.stats.reputationsSaved.Add(1)
			return nil
		})
	}
	return g.Wait()
}
