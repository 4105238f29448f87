package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

var (
	rucksackDir   string
	rucksackScope string
	rucksackFile  string
)

var rucksackCmd = &cobra.Command{
	Use:   "rucksack",
	Short: "Manage reusable document fragments",
	Long: `The rucksack stores reusable document fragments such as text styles,
layers, vector objects and layer effects. Items live in a project scope
(shared via the tracked directory) or a user scope (shared across all
projects); project items shadow user items with the same kind and name.`,
}

var rucksackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fragments visible to a directory",
	Args:  cobra.NoArgs,
	RunE:  runRucksackList,
}

var rucksackPutCmd = &cobra.Command{
	Use:   "put <kind> <name>",
	Short: "Store the current host selection as a fragment",
	Long: `Captures the currently selected fragment of the given kind from the
host application and stores it under the given name. With --file, the
payload is read from a file instead of the host.`,
	Args: cobra.ExactArgs(2),
	RunE: runRucksackPut,
}

var rucksackInsertCmd = &cobra.Command{
	Use:   "insert <kind> <name>",
	Short: "Insert a fragment into the active document",
	Args:  cobra.ExactArgs(2),
	RunE:  runRucksackInsert,
}

var rucksackDeleteCmd = &cobra.Command{
	Use:   "delete <kind> <name>",
	Short: "Delete a fragment from one scope",
	Args:  cobra.ExactArgs(2),
	RunE:  runRucksackDelete,
}

var rucksackMoveCmd = &cobra.Command{
	Use:   "move <kind> <name>",
	Short: "Move a fragment to the other scope",
	Long: `Moves a fragment between the project and user scopes. The --scope
flag names the scope the fragment currently lives in.`,
	Args: cobra.ExactArgs(2),
	RunE: runRucksackMove,
}

func init() {
	rucksackCmd.PersistentFlags().StringVarP(&rucksackDir, "dir", "d", ".", "tracked directory")
	rucksackCmd.PersistentFlags().StringVarP(&rucksackScope, "scope", "s", "project", "scope (project or user)")
	rucksackPutCmd.Flags().StringVarP(&rucksackFile, "file", "f", "", "read the payload from a file instead of the host")

	rucksackCmd.AddCommand(rucksackListCmd)
	rucksackCmd.AddCommand(rucksackPutCmd)
	rucksackCmd.AddCommand(rucksackInsertCmd)
	rucksackCmd.AddCommand(rucksackDeleteCmd)
	rucksackCmd.AddCommand(rucksackMoveCmd)
	rootCmd.AddCommand(rucksackCmd)
}

func rucksackContext(cmd *cobra.Command) (context.Context, string, error) {
	if rucksackService == nil {
		return nil, "", errors.New("rucksack service not configured")
	}
	dir, err := resolveDir([]string{rucksackDir})
	if err != nil {
		return nil, "", err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, dir, nil
}

func parseScope() (domain.RucksackScope, error) {
	scope := domain.RucksackScope(rucksackScope)
	if !scope.IsValid() {
		return "", fmt.Errorf("unknown scope %q (use project or user)", rucksackScope)
	}
	return scope, nil
}

func parseKind(arg string) (domain.FragmentKind, error) {
	kind := domain.FragmentKind(arg)
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown fragment kind %q", arg)
	}
	return kind, nil
}

func runRucksackList(cmd *cobra.Command, _ []string) error {
	ctx, dir, err := rucksackContext(cmd)
	if err != nil {
		return err
	}

	view, err := rucksackService.View(ctx, dir)
	if err != nil {
		return fmt.Errorf("building rucksack view: %w", err)
	}

	items := view.Items()
	if len(items) == 0 {
		cmd.Println("Rucksack is empty.")
		return nil
	}
	for _, item := range items {
		cmd.Printf("%-14s %-24s %s\n", item.Kind, item.Name, item.Scope)
	}
	return nil
}

func runRucksackPut(cmd *cobra.Command, args []string) error {
	ctx, dir, err := rucksackContext(cmd)
	if err != nil {
		return err
	}
	scope, err := parseScope()
	if err != nil {
		return err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	if rucksackFile != "" {
		payload, err := os.ReadFile(rucksackFile)
		if err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}
		err = rucksackService.Put(ctx, dir, domain.RucksackItem{
			Scope:   scope,
			Kind:    kind,
			Name:    name,
			Payload: payload,
		})
		if err != nil {
			return fmt.Errorf("storing fragment: %w", err)
		}
	} else {
		if err := rucksackService.CaptureAndPut(ctx, dir, scope, kind, name); err != nil {
			if errors.Is(err, domain.ErrNotImplemented) {
				return errors.New("no capture command configured (use --file, or set host.capture_command)")
			}
			return fmt.Errorf("capturing fragment: %w", err)
		}
	}

	cmd.Printf("Stored %s %q in %s scope.\n", kind, name, scope)
	return nil
}

func runRucksackInsert(cmd *cobra.Command, args []string) error {
	ctx, dir, err := rucksackContext(cmd)
	if err != nil {
		return err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	view, err := rucksackService.View(ctx, dir)
	if err != nil {
		return fmt.Errorf("building rucksack view: %w", err)
	}
	if err := rucksackService.ResolveAndInsert(ctx, view, kind, name); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return fmt.Errorf("no %s named %q in view", kind, name)
		}
		if errors.Is(err, domain.ErrNotImplemented) {
			return errors.New("no insert command configured (set host.insert_command)")
		}
		return fmt.Errorf("inserting fragment: %w", err)
	}

	cmd.Printf("Inserted %s %q.\n", kind, name)
	return nil
}

func runRucksackDelete(cmd *cobra.Command, args []string) error {
	ctx, dir, err := rucksackContext(cmd)
	if err != nil {
		return err
	}
	scope, err := parseScope()
	if err != nil {
		return err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	if err := rucksackService.Delete(ctx, dir, scope, kind, name); err != nil {
		return fmt.Errorf("deleting fragment: %w", err)
	}
	cmd.Printf("Deleted %s %q from %s scope.\n", kind, name, scope)
	return nil
}

func runRucksackMove(cmd *cobra.Command, args []string) error {
	ctx, dir, err := rucksackContext(cmd)
	if err != nil {
		return err
	}
	from, err := parseScope()
	if err != nil {
		return err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	to := domain.ScopeUser
	if from == domain.ScopeUser {
		to = domain.ScopeProject
	}

	if err := rucksackService.Move(ctx, dir, from, to, kind, name); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return fmt.Errorf("no %s named %q in %s scope", kind, name, from)
		}
		return fmt.Errorf("moving fragment: %w", err)
	}
	cmd.Printf("Moved %s %q from %s to %s scope.\n", kind, name, from, to)
	return nil
}
