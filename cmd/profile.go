package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/paanihub/paanictl/internal/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit the signed-in profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireAuth(cmd.Context()); err != nil {
			return err
		}
		prof := app.profile.Current()
		if prof == nil {
			return fmt.Errorf("profile not available")
		}

		fmt.Printf("Name:     %s %s\n", prof.FirstName, prof.LastName)
		fmt.Printf("Email:    %s\n", prof.Email)
		fmt.Printf("Phone:    %s\n", prof.PhoneNumber)
		fmt.Printf("Address:  %s, %s %s\n", prof.Address, prof.City, prof.ZipCode)
		fmt.Printf("Role:     %s\n", prof.Role)
		if prof.Role == models.RoleDriver {
			fmt.Printf("Licence:  %s\n", prof.LicenceNo)
			fmt.Printf("Vehicle:  %s\n", prof.CarNo)
		}
		if app.profile.Complete() {
			fmt.Println("Profile is complete")
		} else {
			fmt.Println("Profile is incomplete, fill the missing fields with 'paanictl profile update'")
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		if err := app.requireAuth(ctx); err != nil {
			return err
		}

		fields := make(map[string]string)
		for flag, key := range map[string]string{
			"first-name": "firstName",
			"last-name":  "lastName",
			"phone":      "phoneNumber",
			"city":       "city",
			"zip-code":   "zipCode",
			"address":    "address",
			"licence-no": "licenceNo",
			"car-no":     "carNo",
			"gender":     "gender",
		} {
			if cmd.Flags().Changed(flag) {
				value, _ := cmd.Flags().GetString(flag)
				fields[key] = value
			}
		}

		picturePath, _ := cmd.Flags().GetString("picture")
		var picture *os.File
		pictureName := ""
		if picturePath != "" {
			picture, err = os.Open(picturePath)
			if err != nil {
				return fmt.Errorf("opening picture: %w", err)
			}
			defer picture.Close()
			pictureName = filepath.Base(picturePath)
		}

		if len(fields) == 0 && picture == nil {
			return fmt.Errorf("nothing to update")
		}

		if picture != nil {
			err = app.api.UpdateProfile(ctx, fields, picture, pictureName)
		} else {
			err = app.api.UpdateProfile(ctx, fields, nil, "")
		}
		if err != nil {
			return err
		}

		// refetch so the local copy matches what the backend stored
		_ = app.profile.Sync(ctx, false)
		if err := app.profile.Sync(ctx, true); err != nil {
			log.WithError(err).Warn("refreshing profile after update")
		}
		fmt.Println("Profile updated")
		return nil
	},
}

var switchRoleCmd = &cobra.Command{
	Use:   "switch-role",
	Short: "Toggle between the customer and driver side",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		if err := app.requireAuth(ctx); err != nil {
			return err
		}

		role, _ := cmd.Flags().GetString("role")
		if role == "" {
			if app.profile.Current().Role == models.RoleDriver {
				role = models.RoleUser
			} else {
				role = models.RoleDriver
			}
		}

		if err := app.profile.SwitchRole(ctx, role); err != nil {
			return err
		}
		app.rec.Record(models.TopicRoleSwitched, models.RoleSwitchedEvent{
			Timestamp: time.Now().Unix(),
			ProfileID: app.profile.Current().ProfileID,
			Role:      role,
		})
		fmt.Printf("Role is now %s\n", role)
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().String("first-name", "", "first name")
	profileUpdateCmd.Flags().String("last-name", "", "last name")
	profileUpdateCmd.Flags().String("phone", "", "phone number")
	profileUpdateCmd.Flags().String("city", "", "city")
	profileUpdateCmd.Flags().String("zip-code", "", "zip code")
	profileUpdateCmd.Flags().String("address", "", "street address")
	profileUpdateCmd.Flags().String("licence-no", "", "driving licence number")
	profileUpdateCmd.Flags().String("car-no", "", "vehicle registration")
	profileUpdateCmd.Flags().String("gender", "", "gender")
	profileUpdateCmd.Flags().String("picture", "", "path to a profile picture")

	switchRoleCmd.Flags().String("role", "", "target role (user or driver), defaults to the other side")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd, switchRoleCmd)
	rootCmd.AddCommand(profileCmd)
}
