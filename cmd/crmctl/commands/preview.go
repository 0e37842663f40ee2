package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"crm-platform/internal/assignment"
)

var (
	previewLeadsPath     string
	previewEmployeesPath string
	previewEmployeeID    string
	previewDepartingID   string
)

// NewPreviewCmd creates the preview command and its bulk, onboard and reclaim subcommands.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Dry-run lead assignment against CSV files",
		Long: `Run an assignment pass over CSV inputs and print the decisions as JSON.

Leads use the upload format (name, email, location, language, ...). Employees use
id, firstName, lastName, location, languages. Row order is assignment order.

Examples:
  crmctl preview bulk --leads leads.csv --employees team.csv
  crmctl preview onboard --leads backlog.csv --employees team.csv --employee e7
  crmctl preview reclaim --leads open.csv --employees team.csv --departing e3`,
	}
	cmd.PersistentFlags().StringVar(&previewLeadsPath, "leads", "", "Leads CSV file")
	cmd.PersistentFlags().StringVar(&previewEmployeesPath, "employees", "", "Employees CSV file")
	_ = cmd.MarkPersistentFlagRequired("leads")
	_ = cmd.MarkPersistentFlagRequired("employees")

	cmd.AddCommand(newPreviewBulkCmd())
	cmd.AddCommand(newPreviewOnboardCmd())
	cmd.AddCommand(newPreviewReclaimCmd())
	return cmd
}

func newPreviewBulkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk",
		Short: "Assign every lead to the first matching employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, es, err := loadPreviewInputs()
			if err != nil {
				return err
			}
			res, err := assignment.AssignBulk(ls, es)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func newPreviewOnboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Offer every lead to one new employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, es, err := loadPreviewInputs()
			if err != nil {
				return err
			}
			emp, ok := findEmployee(es, previewEmployeeID)
			if !ok {
				return fmt.Errorf("employee %q not in employees CSV", previewEmployeeID)
			}
			res, err := assignment.AssignOnboard(emp, ls)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringVar(&previewEmployeeID, "employee", "", "ID of the new employee")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func newPreviewReclaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reclaim",
		Short: "Split a departing employee's leads across the rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, es, err := loadPreviewInputs()
			if err != nil {
				return err
			}
			rest := make([]assignment.EmployeeSnapshot, 0, len(es))
			for _, e := range es {
				if e.ID != previewDepartingID {
					rest = append(rest, e)
				}
			}
			res, err := assignment.Reclaim(previewDepartingID, ls, rest)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringVar(&previewDepartingID, "departing", "", "ID of the departing employee")
	_ = cmd.MarkFlagRequired("departing")
	return cmd
}

func loadPreviewInputs() ([]assignment.LeadSnapshot, []assignment.EmployeeSnapshot, error) {
	ls, err := openAndRead(previewLeadsPath, readLeads)
	if err != nil {
		return nil, nil, fmt.Errorf("loading leads: %w", err)
	}
	es, err := openAndRead(previewEmployeesPath, readEmployees)
	if err != nil {
		return nil, nil, fmt.Errorf("loading employees: %w", err)
	}
	return ls, es, nil
}

func findEmployee(es []assignment.EmployeeSnapshot, id string) (assignment.EmployeeSnapshot, bool) {
	for _, e := range es {
		if e.ID == id {
			return e, true
		}
	}
	return assignment.EmployeeSnapshot{}, false
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
