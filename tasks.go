package rostersync

import (
	"context"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/store"
)

// Tasks maps realm names to the guilds synchronized on them.
type Tasks map[string][]string

// Realms returns the realm names in sorted order.
func (t Tasks) Realms() []string {
	realms := make([]string, 0, len(t))
	for realm := range t {
		realms = append(realms, realm)
	}
	slices.Sort(realms)
	return realms
}

// Len returns the number of guild runs the tasks describe.
func (t Tasks) Len() int {
	n := 0
	for _, guilds := range t {
		n += len(guilds)
	}
	return n
}

// Clone returns a deep copy.
func (t Tasks) Clone() Tasks {
	out := make(Tasks, len(t))
	for realm, guilds := range t {
		out[realm] = slices.Clone(guilds)
	}
	return out
}

// Filter returns the tasks whose guilds satisfy keep. Realms left without
// guilds are dropped.
func (t Tasks) Filter(keep func(realm, guild string) bool) Tasks {
	out := make(Tasks, len(t))
	for realm, guilds := range t {
		var kept []string
		for _, guild := range guilds {
			if keep(realm, guild) {
				kept = append(kept, guild)
			}
		}
		if len(kept) > 0 {
			out[realm] = kept
		}
	}
	return out
}

// LoadTasksFile reads tasks from a YAML file of the form
//
//	Nostalrius:
//	  - vanguard
//	  - nightfall
func LoadTasksFile(path string) (Tasks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("tasks file", path)
		}
		return nil, errors.NewConfigError("tasks", "reading tasks file", err)
	}

	var tasks Tasks
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if tasks == nil {
		tasks = Tasks{}
	}
	return tasks, nil
}

// ReadTasks reads the tasks node. Each realm child holds either an array of
// guild names or an object whose values are guild names, which is what
// pushed lists look like in the store.
func ReadTasks(ctx context.Context, root store.Ref) (Tasks, error) {
	node, err := root.Child(constants.NodeTasks).Read(ctx)
	if err != nil {
		return nil, err
	}

	tasks := Tasks{}
	for _, realm := range node.Keys() {
		child := node.Child(realm)
		if guilds := child.Strings(); guilds != nil {
			tasks[realm] = guilds
			continue
		}
		var guilds []string
		for _, key := range child.Keys() {
			if name, ok := child.Child(key).Value().(string); ok && name != "" {
				guilds = append(guilds, name)
			}
		}
		tasks[realm] = guilds
	}
	return tasks, nil
}
