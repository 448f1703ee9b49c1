package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "listen for utxo events",
	Long: "this command streams the events about utxos being added, locked, " +
		"unlocked or spent until interrupted",
	RunE: listenNotifications,
}

func listenNotifications(_ *cobra.Command, _ []string) error {
	client, cleanup, err := getNotificationClient()
	if err != nil {
		return err
	}
	defer cleanup()

	stream, err := client.UtxosNotifications(
		context.Background(), &pb.UtxosNotificationsRequest{},
	)
	if err != nil {
		printErr(err)
		return nil
	}

	for {
		event, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			printErr(err)
			return nil
		}
		if err := printJSON(event); err != nil {
			return err
		}
	}
}
