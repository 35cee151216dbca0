package reconciler

import (
	"context"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/logging"
	"github.com/rostersync/rostersync/pkg/models"
)

// SaveCharacter inserts or updates c under characters/. A new character
// gets dateAdded; an existing one is merged without touching it. Invalid
// characters are skipped.
func (r *Reconciler) SaveCharacter(ctx context.Context, c *models.Character) error {
	data := c.Data()
	if data == nil {
		r.stats.skipped.Add(1)
		return nil
	}

	ref := r.node(constants.NodeCharacters, c.Name())
	stored, err := ref.Read(ctx)
	if err != nil {
		return err
	}

	if !stored.Exists() {
		data["dateAdded"] = r.today()
		if err := ref.Set(ctx, data); err != nil {
			return err
		}
		r.stats.added.Add(1)
		logging.FromContext(ctx).Info().Msg("Character added")
		return nil
	}

	if err := ref.Update(ctx, data); err != nil {
		return err
	}
	r.stats.updated.Add(1)
	return nil
}

// CleanRemovedCharacters archives every stored character whose name is not
// in current. Each archival removes the character, writes it to
// ex-characters/ and removes its professions, reputations, items and
// bosskills. Archivals run concurrently and any failure fails the call.
func (r *Reconciler) CleanRemovedCharacters(ctx context.Context, current []string) error {
	stored, err := r.node(constants.NodeCharacters).Read(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range stored.Keys() {
		if slices.Contains(current, name) {
			continue
		}
		fields := maps.Clone(stored.Child(name).Map())
		g.Go(func() error {
			return r.archive(gctx, name, fields)
		})
	}
	return g.Wait()
}

// archive moves one character to ex-characters and cascades its removal.
func (r *Reconciler) archive(ctx context.Context, name string, fields map[string]any) error {
	ctx = logging.WithCharacter(ctx, name)

	archived := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if k != "dateAdded" {
			archived[k] = v
		}
	}
	archived["dateRemoved"] = r.today()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.node(constants.NodeCharacters, name).Remove(gctx)
	})
	g.Go(func() error {
		return r.node(constants.NodeExCharacters, name).Set(gctx, archived)
	})
	g.Go(func() error {
		return r.removeLeaves(gctx, constants.NodeProfessions, name)
	})
	g.Go(func() error {
		return r.removeLeaves(gctx, constants.NodeReputations, name)
	})
	g.Go(func() error {
		return r.node(constants.NodeItems, name).Remove(gctx)
	})
	g.Go(func() error {
		return r.node(constants.NodeBosskills, name).Remove(gctx)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	r.stats.archive(name)
	logging.FromContext(ctx).Info().Msg("Character archived")
	return nil
}

// removeLeaves removes <category>/*/<name>.
func (r *Reconciler) removeLeaves(ctx context.Context, category, name string) error {
	node, err := r.node(category).Read(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range node.Keys() {
		if !node.Child(key).Child(name).Exists() {
			continue
		}
		g.Go(func() error {
			return r.node(category, key, name).Remove(gctx)
		})
	}
	return g.Wait()
}
