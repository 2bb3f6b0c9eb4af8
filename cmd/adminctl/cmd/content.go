package cmd

import (
	"fmt"

	"github.com/aqarhub/go-admin-client/articles"
	"github.com/aqarhub/go-admin-client/unitrequests"
	"github.com/spf13/cobra"
)

var (
	listPage     int
	listPageSize int
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		svc, err := articles.NewService(app.API)
		if err != nil {
			return err
		}

		page, err := svc.Search(cmd.Context(), listPage, listPageSize)
		if err != nil {
			return err
		}
		for _, article := range page.Articles {
			fmt.Printf("%s  %-40s  %s\n", article.ID, article.TitleEn, article.CreatedAt)
		}
		fmt.Printf("%d articles total\n", page.TotalCount)
		return nil
	},
}

var unitRequestsCmd = &cobra.Command{
	Use:   "unit-requests",
	Short: "List estate-unit requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		svc, err := unitrequests.NewService(app.API)
		if err != nil {
			return err
		}

		page, err := svc.Search(cmd.Context(), listPage, listPageSize)
		if err != nil {
			return err
		}
		for _, request := range page.Requests {
			fmt.Printf("%s  %-24s  status=%d  %s\n", request.ID, request.CustomerName, request.Status, request.CreatedOn)
		}
		fmt.Printf("%d requests total\n", page.TotalCount)
		return nil
	},
}

var guardCmd = &cobra.Command{
	Use:   "guard <path>",
	Short: "Show the navigation decision for a route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		decision := app.Guard.CanActivate(args[0])
		if decision.Allow {
			fmt.Printf("%s: allowed\n", args[0])
		} else {
			fmt.Printf("%s: denied, redirect to %s\n", args[0], decision.RedirectTo)
		}
		return nil
	},
}

func init() {
	articlesCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	articlesCmd.Flags().IntVar(&listPageSize, "page-size", 10, "Page size")
	unitRequestsCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	unitRequestsCmd.Flags().IntVar(&listPageSize, "page-size", 10, "Page size")
	rootCmd.AddCommand(articlesCmd, unitRequestsCmd, guardCmd)
}
