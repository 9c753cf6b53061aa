package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agrilearn/agrilearn/internal/weather"
)

func addWeather(topLevel *cobra.Command) {
	var listAreas bool

	cmd := &cobra.Command{
		Use:   "weather [area-code]",
		Short: "Show the BMKG forecast for an area",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listAreas || len(args) == 0 {
				return printAreas()
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			client, err := weather.NewClient(e.cfg)
			if err != nil {
				return err
			}

			forecasts, err := client.Forecasts(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			label := args[0]
			if provinces, err := weather.LoadProvinces(); err == nil {
				if area, prov, ok := weather.FindArea(provinces, args[0]); ok {
					label = fmt.Sprintf("%s, %s", area.Name, prov.Name)
				}
			}
			fmt.Printf("Forecast for %s\n\n", label)

			for _, f := range forecasts {
				fmt.Printf("%s  %4.1f°C  %3.0f%% humidity  %4.1f km/h  %s\n",
					f.Time.Format("Mon 15:04"), f.Temperature, f.Humidity, f.WindSpeed, f.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&listAreas, "areas", "a", false, "list known area codes")

	topLevel.AddCommand(cmd)
}

func printAreas() error {
	provinces, err := weather.LoadProvinces()
	if err != nil {
		return err
	}
	for _, prov := range provinces {
		fmt.Println(prov.Name)
		for _, area := range prov.Areas {
			fmt.Printf("  %-16s %s\n", area.Code, area.Name)
		}
	}
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println("Run 'agrilearn weather <area-code>' for a forecast")
	return nil
}
