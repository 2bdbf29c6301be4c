package commands

import (
	"coursecatalog-backend/internal/components/db"
	"coursecatalog-backend/pkg/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var coursesSemester *string

func init() {
	coursesSemester = coursesCmd.Flags().String("semester", "", "Only list courses of this semester code, ex. 1249.")
	rootCmd.AddCommand(coursesCmd)
}

var coursesCmd = &cobra.Command{
	Use:   "courses [--semester <code>]",
	Short: "Lists the courses stored in the database along with their professors.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		sqlDB, err := config.Database.OpenDB(ctx, db.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer sqlDB.Close()

		rows, err := db.New(sqlDB).ListCourses(ctx, *coursesSemester)
		if err != nil {
			serviceutil.Fatal("failed to list courses", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Course", "Section", "Semester", "Name", "Professors"})
		for _, row := range rows {
			t.AppendRow(table.Row{row.CourseCode, row.Section, row.Semester, row.CourseName, row.Professors})
		}
		t.AppendFooter(table.Row{"", "", "", "Total", len(rows)})
		t.Render()
	},
}
