package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/biblio/internal/config"
	"github.com/mmynk/biblio/internal/lending"
	"github.com/mmynk/biblio/internal/library"
	"github.com/mmynk/biblio/internal/middleware"
	"github.com/mmynk/biblio/internal/models"
	"github.com/mmynk/biblio/internal/notify"
	"github.com/mmynk/biblio/internal/registry"
	"github.com/mmynk/biblio/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	reg := registry.New()
	lib := library.New(cfg.LibraryName,
		library.WithLogger(logger),
		library.WithRegistry(reg),
		library.WithLender(middleware.NewLoggingLender(lending.NewEngine(reg), logger)),
	)

	lib.Subscribe(notify.ObserverFunc(func(source string, change models.Change) error {
		fmt.Printf("%s -> %s\n", source, change)
		return nil
	}))

	metrics := prometheus.NewRegistry()
	counter, err := notify.NewPrometheusObserver(metrics)
	if err != nil {
		slog.Error("Failed to register metrics", "error", err)
		os.Exit(1)
	}
	lib.Subscribe(counter)

	if err := populate(lib); err != nil {
		fmt.Fprintf(os.Stderr, "%s : %v\n", models.KindOf(err), err)
	}

	lend(lib)

	if cfg.ExportPath != "" {
		if err := lib.ExportFile(context.Background(), cfg.ExportPath); err != nil {
			fmt.Fprintf(os.Stderr, "%s : %v\n", models.KindOf(err), err)
			os.Exit(1)
		}
		slog.Info("Library exported", "path", cfg.ExportPath)
	}

	if cfg.Metrics {
		if err := printMetrics(metrics); err != nil {
			slog.Error("Failed to gather metrics", "error", err)
			os.Exit(1)
		}
	}
}

// populate registers the demo's authors, members, laptops and books.
func populate(lib *library.Library) error {
	return lib.Chain().
		AddAuthor(models.NewPerson("marie.durand@test.fr", "marie", "durand")).
		AddAuthor(models.NewPerson("jean.martin@test.fr", "jean", "martin")).
		AddMember("pierre.dupond@test.fr", "pierre", "dupond", models.StatusTeacher).
		AddMember("marc.durand@test.fr", "marc", "durand", models.StatusStudent).
		AddLaptop("Vaio", models.OSLinux).
		AddLaptop("Dell", models.OSWindows).
		AddLaptop("Macbook Pro", models.OSMacOS).
		AddBook("123-XY", "Mon livre 1", "marie.durand@test.fr").
		AddBook("A", "Mon livre 1", "marie.durand@test.fr").
		AddBook("B", "Mon livre B", "marie.durand@test.fr").
		AddBook("C", "Mon livre C", "marie.durand@test.fr").
		AddBook("D", "Mon livre D", "marie.durand@test.fr").
		Err()
}

// lend runs a borrow/return cycle, printing failures and carrying on.
func lend(lib *library.Library) {
	steps := []struct {
		name string
		run  func() error
	}{
		{"pierre borrows laptop 2", func() error {
			_, err := lib.BorrowEquipment("pierre.dupond@test.fr", 2)
			return err
		}},
		{"marc borrows laptop 2", func() error {
			_, err := lib.BorrowEquipment("marc.durand@test.fr", 2)
			return err
		}},
		{"marc borrows book 123-XY", func() error {
			_, err := lib.BorrowDocument("marc.durand@test.fr", "123-XY")
			return err
		}},
		{"laptop 2 is returned", func() error { return lib.ReturnEquipment(2) }},
		{"marc borrows laptop 2", func() error {
			_, err := lib.BorrowEquipment("marc.durand@test.fr", 2)
			return err
		}},
		{"book A is returned", func() error { return lib.ReturnDocument("A") }},
		{"nobody borrows book Z", func() error {
			_, err := lib.BorrowDocument("nobody@test.fr", "Z")
			return err
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s : %v\n", step.name, models.KindOf(err), err)
		}
	}
}

func printMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			fmt.Printf("%s%s %v\n", family.GetName(), labels, m.GetCounter().GetValue())
		}
	}
	return nil
}
