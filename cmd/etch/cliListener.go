package main

import (
	"fmt"

	"github.com/eiannone/keyboard"

	"etch/engine/actors"
	"etch/state/capability"
)

// cliListener listens for keypresses and prints parts of the registry until q is pressed.
func cliListener(s *session) error {
	fmt.Println("VIEW CURRENT STATE:\np: posts and holders\nr: roles\na: audit records from this session\nw: current wallet\nc: config\nq: to quit")
	for {
		r, k, err := keyboard.GetSingleKey()
		if err != nil {
			return err
		}
		str := string(r)
		switch str {
		default:
			if k == keyboard.KeyEnter {
				fmt.Println("\n-----------------------------------")
				break
			}
			if r == 0 {
				break
			}
			fmt.Println("Key " + str + " is not bound to anything. See cliListener.go for more details.")
		case "p":
			printRegistry(s.service)
		case "r":
			fmt.Println("ADMINS")
			for _, account := range s.service.Members(capability.DefaultAdminRole) {
				fmt.Println(account)
			}
			fmt.Println("MINTERS")
			for _, account := range s.service.Members(capability.MinterRole) {
				fmt.Println(account)
			}
		case "a":
			for _, record := range s.service.AuditLog() {
				fmt.Printf("\n#%d %s Event: %s Kind: %d Signed By: %s\nTags: %s\nContent: %s\n", record.Sequence, record.Operation, record.EventID, record.Kind, record.Pubkey, record.Tags, record.Content)
			}
		case "w":
			fmt.Printf("Current Wallet: \n%s\n", s.wallet.Account)
		case "c":
			fmt.Println("CURRENT CONFIG")
			for k, v := range actors.MakeOrGetConfig().AllSettings() {
				fmt.Printf("\nKey: %s; Value: %v\n", k, v)
			}
		case "q":
			return nil
		}
	}
}
