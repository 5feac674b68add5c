// Package main provides the healthrecords binary: a login-gated command
// line front end over the local patient-record core. The commands are thin
// adapters; all validation, persistence and ordering logic lives in the
// internal packages.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"health-records-app/internal/artifact"
	"health-records-app/internal/auth"
	"health-records-app/internal/config"
	"health-records-app/internal/diag"
	"health-records-app/internal/models"
	"health-records-app/internal/notify"
	"health-records-app/internal/store"
)

// app wires the core components consumed by the CLI commands.
type app struct {
	cfg      *config.Config
	records  *store.RecordStore
	sessions *store.SessionStore
	access   *auth.AccessController
	codes    *artifact.Generator
	alerts   *notify.Dispatcher
	closeLog func() error
}

func newApp() (*app, error) {
	// A .env file is optional for a local app.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := diag.Open(cfg.DiagnosticLog)
	if err != nil {
		return nil, err
	}

	records, err := store.OpenRecordStore(cfg.DatabaseFile, logger)
	if err != nil {
		closeLog()
		return nil, errors.New("storage is unavailable; check the diagnostic log")
	}

	return &app{
		cfg:      cfg,
		records:  records,
		sessions: store.NewSessionStore(cfg.SessionFile, logger),
		access:   auth.NewAccessController(auth.DefaultCredentials()),
		codes:    artifact.NewGenerator(cfg.ArtifactDir, logger),
		alerts:   notify.NewDispatcher(logger),
		closeLog: closeLog,
	}, nil
}

func (a *app) close() {
	_ = a.records.Close()
	_ = a.closeLog()
}

// requireSession guards record commands behind a logged-in session.
func (a *app) requireSession() (*models.Session, error) {
	session, err := a.sessions.Get()
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.New("not logged in; run `healthrecords login <username>` first")
	}
	if err != nil {
		return nil, userMessage(err)
	}
	return session, nil
}

// readPassword reads one line from in, tolerating input that ends without
// a trailing newline (a piped password).
func readPassword(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// userMessage converts core errors into messages safe to show the user.
// Raw engine errors stay in the diagnostic log.
func userMessage(err error) error {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("the %s field is missing or malformed", verr.Field)
	}
	var serr *store.StorageError
	if errors.As(err, &serr) {
		return errors.New("a storage problem occurred; see the diagnostic log")
	}
	var aerr *artifact.ArtifactWriteError
	if errors.As(err, &aerr) {
		return errors.New("the code image could not be written; the record is unaffected")
	}
	return err
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return uint(id), nil
}

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			if password == "" {
				var err error
				password, err = readPassword(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			role, err := a.access.Authenticate(username, password)
			if err != nil {
				return errors.New("invalid username or password")
			}
			if err := a.sessions.Put(username, role); err != nil {
				return userMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", username, role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessions.Delete(); err != nil {
				return userMessage(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.sessions.Get()
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			if err != nil {
				return userMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", session.Username, session.Role)
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var input store.RecordInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a patient record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			id, err := a.records.Add(input)
			if err != nil {
				return userMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record %d added\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Name, "name", "", "patient name (required)")
	cmd.Flags().StringVar(&input.Age, "age", "", "patient age (required)")
	cmd.Flags().StringVar(&input.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&input.Contact, "contact", "", "contact number (required)")
	cmd.Flags().StringVar(&input.Address, "address", "", "address")
	cmd.Flags().StringVar(&input.Conditions, "conditions", "", "known conditions")
	cmd.Flags().StringVar(&input.Medications, "medications", "", "current medications")
	cmd.Flags().StringVar(&input.DoctorName, "doctor", "", "doctor name")
	cmd.Flags().StringVar(&input.LastVisit, "last-visit", "", "last visit date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&input.Notes, "notes", "", "free-text notes")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all patient records by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			rows, err := a.records.List()
			if err != nil {
				return userMessage(err)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records")
				return nil
			}
			for _, row := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", row.ID, row.Name)
			}
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			record, err := a.records.Get(id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no record with id %d", id)
			}
			if err != nil {
				return userMessage(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %d\n", record.ID)
			fmt.Fprintf(out, "Name:        %s\n", record.Name)
			fmt.Fprintf(out, "Age:         %s\n", record.Age)
			fmt.Fprintf(out, "Gender:      %s\n", record.Gender)
			fmt.Fprintf(out, "Contact:     %s\n", record.Contact)
			fmt.Fprintf(out, "Address:     %s\n", record.Address)
			fmt.Fprintf(out, "Conditions:  %s\n", record.Conditions)
			fmt.Fprintf(out, "Medications: %s\n", record.Medications)
			fmt.Fprintf(out, "Doctor:      %s\n", record.DoctorName)
			fmt.Fprintf(out, "Last visit:  %s\n", record.LastVisit)
			fmt.Fprintf(out, "Notes:       %s\n", record.Notes)
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.records.Delete(id); err != nil {
				return userMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record %d deleted\n", id)
			return nil
		},
	}
}

func newQRCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "qr <id>",
		Short: "Generate a scannable code for a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			record, err := a.records.Get(id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no record with id %d", id)
			}
			if err != nil {
				return userMessage(err)
			}

			payload := fmt.Sprintf("ID: %d, Name: %s, Contact: %s",
				record.ID, record.Name, record.Contact)
			path, err := a.codes.Generate(payload, record.Name)
			if err != nil {
				return userMessage(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newAlertCmd(a *app) *cobra.Command {
	var destination string
	cmd := &cobra.Command{
		Use:   "alert <id>",
		Short: "Send an emergency notification for a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			record, err := a.records.Get(id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no record with id %d", id)
			}
			if err != nil {
				return userMessage(err)
			}

			if destination == "" {
				destination = record.Contact
			}
			message := fmt.Sprintf("EMERGENCY: Patient %s needs attention. Contact: %s. Conditions: %s",
				record.Name, record.Contact, record.Conditions)
			a.alerts.Send(destination, message)
			fmt.Fprintln(cmd.OutOrStdout(), "Alert dispatched")
			return nil
		},
	}
	cmd.Flags().StringVar(&destination, "to", "", "override destination number")
	return cmd
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	root := &cobra.Command{
		Use:           "healthrecords",
		Short:         "Login-gated local patient record keeper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newQRCmd(a),
		newAlertCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
