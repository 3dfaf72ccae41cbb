package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"etch/state/capability"
	"etch/state/posts"
)

func rootCommand() *cobra.Command {
	var variant string
	rootCmd := &cobra.Command{
		Use:   "etch",
		Short: "etch records signed nostr posts as tokens in a local registry",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "registry variant for a new registry: supplied or sequential (default from config)")

	// withSession opens the registry, runs fn and releases the relays when fn returns
	withSession := func(fn func(s *session, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := openSession(variant)
			if err != nil {
				return err
			}
			defer s.close()
			return fn(s, args)
		}
	}

	rootCmd.AddCommand(createCommand(withSession))
	rootCmd.AddCommand(updateCommand(withSession))
	rootCmd.AddCommand(roleCommand("grant", withSession))
	rootCmd.AddCommand(roleCommand("revoke", withSession))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "print every post, its holders and the registry counters",
		RunE: withSession(func(s *session, args []string) error {
			printRegistry(s.service)
			return nil
		}),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "console",
		Short: "interactive view of the registry",
		RunE: withSession(func(s *session, args []string) error {
			return cliListener(s)
		}),
	})
	return rootCmd
}

type sessionRunner func(fn func(s *session, args []string) error) func(*cobra.Command, []string) error

func addEventFlags(cmd *cobra.Command, opts *eventOptions) {
	cmd.Flags().StringVar(&opts.file, "event", "", "path to a signed nostr event as JSON, - for stdin (default: sign a new event with the local wallet)")
	cmd.Flags().StringVar(&opts.content, "content", "", "content of the event to sign")
	cmd.Flags().IntVar(&opts.kind, "kind", 1, "kind of the event to sign")
	cmd.Flags().StringArrayVar(&opts.tags, "tag", nil, "tag of the event to sign as comma separated values, repeatable")
}

func createCommand(withSession sessionRunner) *cobra.Command {
	var req posts.CreatePostRequest
	var opts eventOptions
	cmd := &cobra.Command{
		Use:   "create",
		Short: "record a post",
		RunE: withSession(func(s *session, args []string) error {
			payload, err := s.payload(opts)
			if err != nil {
				return err
			}
			req.Payload = payload
			id, err := s.service.CreatePost(s.caller, req)
			if err != nil {
				return err
			}
			fmt.Printf("token %d: %s\nbalance of %s: %d\n", id, s.service.URI(id), s.caller, s.service.BalanceOf(s.caller, id))
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.URI, "uri", "", "metadata uri of the post")
	cmd.Flags().Uint64Var(&req.TokenID, "token", 0, "token id (supplied registries only)")
	cmd.Flags().Uint64Var(&req.Quantity, "qty", 1, "instances to issue (supplied registries only)")
	cmd.Flags().BoolVar(&req.AllowMultiple, "multi", false, "issue more instances if the token already exists")
	cmd.MarkFlagRequired("uri")
	addEventFlags(cmd, &opts)
	return cmd
}

func updateCommand(withSession sessionRunner) *cobra.Command {
	var req posts.UpdatePostRequest
	var opts eventOptions
	cmd := &cobra.Command{
		Use:   "update",
		Short: "replace the metadata uri of a post",
		RunE: withSession(func(s *session, args []string) error {
			payload, err := s.payload(opts)
			if err != nil {
				return err
			}
			req.Payload = payload
			if err = s.service.UpdatePost(s.caller, req); err != nil {
				return err
			}
			fmt.Printf("token %d: %s\n", req.TokenID, s.service.URI(req.TokenID))
			return nil
		}),
	}
	cmd.Flags().Uint64Var(&req.TokenID, "token", 0, "token id")
	cmd.Flags().StringVar(&req.URI, "uri", "", "new metadata uri")
	cmd.MarkFlagRequired("token")
	cmd.MarkFlagRequired("uri")
	addEventFlags(cmd, &opts)
	return cmd
}

func roleCommand(action string, withSession sessionRunner) *cobra.Command {
	var roleName string
	cmd := &cobra.Command{
		Use:   action + " <pubkey>",
		Short: action + " a role for an account",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(s *session, args []string) error {
			role, err := parseRole(roleName)
			if err != nil {
				return err
			}
			if action == "grant" {
				err = s.service.GrantRole(s.caller, role, args[0])
			} else {
				err = s.service.RevokeRole(s.caller, role, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s holders:\n", roleName)
			for _, account := range s.service.Members(role) {
				fmt.Println(account)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&roleName, "role", "minter", "minter or admin")
	return cmd
}

func parseRole(name string) (capability.Role, error) {
	switch name {
	case "minter":
		return capability.MinterRole, nil
	case "admin":
		return capability.DefaultAdminRole, nil
	}
	return "", fmt.Errorf("unknown role %q", name)
}

func printRegistry(service *posts.Service) {
	fmt.Printf("Variant: %s\nTotal Posts: %d\nCurrent Token ID: %d\nState Hash: %s\n", service.Variant(), service.TotalPosts(), service.CurrentTokenID(), service.StateHash())
	for _, id := range service.TokenIDs() {
		post, _ := service.Post(id)
		fmt.Printf("\n--------- Token: %d -----------\nURI: %s\nTotal Issued: %d\n", id, post.URI, post.TotalIssued)
		for _, holder := range service.Holders(id) {
			fmt.Printf("Holder: %s Balance: %d\n", holder, service.BalanceOf(holder, id))
		}
	}
}
