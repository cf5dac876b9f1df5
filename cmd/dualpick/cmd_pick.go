package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/dualpick/core"
	"github.com/jask/dualpick/core/element"
	"github.com/jask/dualpick/internal/binding"
	"github.com/jask/dualpick/internal/catalog"
	"github.com/jask/dualpick/internal/database/repository"
	"github.com/jask/dualpick/internal/tui"
	"github.com/jask/dualpick/internal/watch"
)

var (
	pickWatch bool
	pickPlain bool
	pickRedis string
)

var pickCmd = &cobra.Command{
	Use:   "pick <set|file.yaml>",
	Short: "Pick items from an option set",
	Long: `Opens the two-pane picker for a stored option set, or for an option-set
YAML file. Enter saves the selection, esc cancels.`,
	Args: cobra.ExactArgs(1),
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVar(&pickWatch, "watch", false, "reload the picker when the YAML file changes")
	pickCmd.Flags().BoolVar(&pickPlain, "plain", false, "use the plain multi-select form")
	pickCmd.Flags().StringVar(&pickRedis, "redis", "", "store the selection in redis at this address")
}

// pickSource is what a pick session edits: the element, where its
// selection is written and, for files, how to rescan it.
type pickSource struct {
	title   string
	el      *element.Element
	binding binding.Binding
	file    string
	close   func()
}

func isCatalogFile(arg string) bool {
	ext := strings.ToLower(filepath.Ext(arg))
	return ext == ".yaml" || ext == ".yml"
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src, err := openPickSource(ctx, args[0])
	if err != nil {
		return err
	}
	defer src.close()

	pcfg := pickerConfig()

	if pickPlain {
		return runPlain(cmd, src)
	}

	model, err := tui.New(ctx, src.el, tui.Options{
		Title:   src.title,
		Picker:  pcfg,
		Keys:    keyRegistry(),
		Binding: src.binding,
		Logger:  logger,
	})
	if errors.Is(err, core.ErrNoMarkup) {
		logger.Warn("picker unavailable, using plain form", zap.Error(err))
		return runPlain(cmd, src)
	}
	if err != nil {
		return err
	}

	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if pickWatch && src.file != "" {
		fw, err := watch.New(src.file, func() {
			s, err := catalog.Load(src.file)
			if err != nil {
				prog.Send(core.ReattachMsg{Err: err})
				return
			}
			prog.Send(core.ReattachMsg{Element: catalog.ToElement(s)})
		}, logger)
		if err != nil {
			return err
		}
		if err := fw.Start(ctx); err != nil {
			return err
		}
		defer fw.Stop()
	}

	if _, err := prog.Run(); err != nil {
		return err
	}
	if model.Submitted() {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(model.Selection(), "\n"))
	}
	return nil
}

func runPlain(cmd *cobra.Command, src *pickSource) error {
	keys, err := tui.RunFallback(cmd.Context(), src.el, src.title, src.binding)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(keys, "\n"))
	return nil
}

func openPickSource(ctx context.Context, arg string) (*pickSource, error) {
	if isCatalogFile(arg) {
		return openFileSource(ctx, arg)
	}
	db, err := openDB(ctx)
	if err != nil {
		return nil, err
	}
	set, err := repository.NewOptionSetRepo(db).Get(ctx, arg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	src := &pickSource{title: set.Title, close: func() { _ = db.Close() }}
	if src.title == "" {
		src.title = set.Name
	}
	addr := pickRedis
	if addr == "" {
		addr = cfg.Redis.Addr
	}
	if addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		rb := binding.NewRedis(client, set.Name)
		if err := rb.Ping(ctx); err != nil {
			_ = client.Close()
			src.close()
			return nil, fmt.Errorf("redis %s: %w", addr, err)
		}
		src.binding = rb
		src.close = func() { _ = client.Close(); _ = db.Close() }
	} else {
		src.binding = binding.NewSQL(db, set.Name)
	}

	selected, err := src.binding.ReadSelection(ctx)
	if err != nil {
		src.close()
		return nil, err
	}
	src.el = catalog.ToElement(catalog.FromRepository(set, selected))
	return src, nil
}

// openFileSource edits a YAML option set in place. Each save reloads the
// file so edits made while the picker was open are kept.
func openFileSource(_ context.Context, path string) (*pickSource, error) {
	s, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	title := s.Title
	if title == "" {
		title = s.Name
	}
	write := func(_ context.Context, keys []string) error {
		cur, err := catalog.Load(path)
		if err != nil {
			return err
		}
		cur.Selected = keys
		return catalog.Save(path, cur)
	}
	return &pickSource{
		title:   title,
		el:      catalog.ToElement(s),
		binding: binding.Func{Write: write},
		file:    path,
		close:   func() {},
	}, nil
}
