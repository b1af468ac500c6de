package cli

import (
	"github.com/spf13/cobra"

	"github.com/qtmops/coco-cloner/internal/pkg/env"
	"github.com/qtmops/coco-cloner/internal/pkg/interaction"
	"github.com/qtmops/coco-cloner/internal/pkg/options"
	"github.com/qtmops/coco-cloner/internal/pkg/remote"
	"github.com/qtmops/coco-cloner/internal/pkg/utils"
)

const authShortDescription = `Log in and store the bearer token`
const authLongDescription = `Command "auth"

Log in to the QTM backend with a user name and password
and store the received bearer token to the ".env" file.
The other commands then authenticate with the stored token.

Credentials are read from the AUTH_USERNAME and AUTH_PASSWORD
envs, missing values are asked interactively.
`

func authCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: authShortDescription,
		Long:  authLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := root.options

			// Ask for missing credentials
			if o.Username == "" {
				if value, ok := root.prompt.Ask(&interaction.Question{
					Label:     "User name",
					Validator: interaction.ValueRequired,
				}); ok {
					o.Username = value
				}
			}
			if o.Password == "" {
				if value, ok := root.prompt.Ask(&interaction.Question{
					Label:     "Password",
					Hidden:    true,
					Validator: interaction.ValueRequired,
				}); ok {
					o.Password = value
				}
			}
			if err := root.ValidateOptions(options.FieldEnvironment, options.FieldUsername, options.FieldPassword); err != nil {
				return err
			}

			// Log in
			baseUrl, err := remote.BaseUrl(o.Environment)
			if err != nil {
				return err
			}
			api := remote.NewQtmApi(root.ctx, baseUrl, root.logger, o.VerboseApi)
			token, err := api.Login(o.Username, o.Password)
			if err != nil {
				return err
			}

			// Store the token next to the other envs
			o.AuthToken = token
			if err := env.SaveKey(root.workingDir, "AUTH_TOKEN", token); err != nil {
				return utils.WrapError("cannot store the token", err)
			}

			root.logger.Infof(`Authenticated to "%s".`, o.Environment)
			root.logger.Info(`The token is stored in the ".env" file.`)
			return nil
		},
	}

	return cmd
}
