package reconciler

import (
	"context"
	"slices"
	"strconv"

	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/logging"
	"github.com/rostersync/rostersync/pkg/models"
)

// SaveActivity records one feed entry. A boss kill is written once to
// bosskills/<character>/<bosskillID> and never overwritten. A loot entry
// adds its datetime to the set at items/<character>/<id>. Invalid
// activities are skipped.
func (r *Reconciler) SaveActivity(ctx context.Context, a *models.Activity) error {
	if !a.IsValid() {
		r.stats.dropped.Add(1)
		return nil
	}
	if a.IsBosskill() {
		return r.saveBosskill(ctx, a)
	}
	return r.saveItem(ctx, a)
}

func (r *Reconciler) saveBosskill(ctx context.Context, a *models.Activity) error {
	ref := r.node(constants.NodeBosskills, a.CharacterName(), strconv.Itoa(a.BosskillID()))
	stored, err := ref.Read(ctx)
	if err != nil {
		return err
	}
	if stored.Exists() {
		return nil
	}

	if err := ref.Set(ctx, map[string]any{
		"bossID":     a.ID(),
		"dateKilled": a.Datetime(),
	}); err != nil {
		return err
	}
	r.stats.bosskills.Add(1)
	logging.FromContext(ctx).Debug().
		Int("bosskill_id", a.BosskillID()).
		Msg("Bosskill recorded")
	return nil
}

func (r *Reconciler) saveItem(ctx context.Context, a *models.Activity) error {
	ref := r.node(constants.NodeItems, a.CharacterName(), strconv.Itoa(a.ID()))
	stored, err := ref.Read(ctx)
	if err != nil {
		return err
	}

	seen := stored.Strings()
	if len(seen) == 0 {
		if err := ref.Set(ctx, []string{a.Datetime()}); err != nil {
			return err
		}
		r.stats.itemsRecorded.Add(1)
		return nil
	}
	if slices.Contains(seen, a.Datetime()) {
		return nil
	}

	if err := ref.Set(ctx, append(seen, a.Datetime())); err != nil {
		return err
	}
	r.stats.itemsAppended.Add(1)
	return nil
}
