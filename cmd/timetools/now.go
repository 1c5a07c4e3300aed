package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/weisyn/timetools/internal/app"
	"github.com/weisyn/timetools/pkg/types"
)

type nowFlags struct {
	unit   string
	all    bool
	pretty bool
}

func newNowCmd(global *GlobalFlags) *cobra.Command {
	f := &nowFlags{}

	cmd := &cobra.Command{
		Use:   "now",
		Short: "输出当前时间距纪元的偏移量",
		Example: `  timetools now
  timetools now --unit ns
  timetools now --all --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var unit *types.TimeUnit
			if f.unit != "" {
				u, err := types.ParseTimeUnit(f.unit)
				if err != nil {
					return err
				}
				unit = &u
			}

			return runWithApp(cmd.Context(), global, func(a *app.App) error {
				reader := a.Reader()
				if f.all {
					offsets, err := reader.NowAll()
					if err != nil {
						return err
					}
					return printOffsets(cmd, offsets, f.pretty)
				}

				u := reader.DefaultUnit()
				if unit != nil {
					u = *unit
				}
				v, err := reader.NowAs(u)
				if err != nil {
					return err
				}
				if f.pretty {
					return renderTable(cmd, [][]string{{"单位", "偏移量"}, {u.String(), strconv.FormatUint(v, 10)}})
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&f.unit, "unit", "u", "", "时间单位: ms|ns|us|s（默认取配置 default_unit）")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "单次采样输出全部单位")
	cmd.Flags().BoolVarP(&f.pretty, "pretty", "p", false, "以表格输出")

	return cmd
}

func printOffsets(cmd *cobra.Command, o types.Offsets, pretty bool) error {
	if pretty {
		data := [][]string{{"单位", "偏移量"}}
		for _, u := range types.AllTimeUnits {
			v, _ := o.Get(u)
			data = append(data, []string{u.String(), strconv.FormatUint(v, 10)})
		}
		return renderTable(cmd, data)
	}

	for _, u := range types.AllTimeUnits {
		v, _ := o.Get(u)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", u, v)
	}
	return nil
}

func renderTable(cmd *cobra.Command, data [][]string) error {
	content, err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("渲染表格失败: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), content)
	return nil
}
