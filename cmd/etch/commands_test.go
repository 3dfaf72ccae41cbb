package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"etch/engine/library"
)

func TestRootCommand_NoCallerOverride(t *testing.T) {
	root := rootCommand()
	assert.Nil(t, root.PersistentFlags().Lookup("caller"))
	assert.NotNil(t, root.PersistentFlags().Lookup("variant"))
}

func TestNewSession_ActsAsWallet(t *testing.T) {
	wallet := library.Wallet{
		PrivateKey: "5ee1c8000ab28edd64d74a7d951ac2dd559814887b1b9e1ac7c5f89e96125c12",
		Account:    "c3cea60c7e452527daae9d5eb78805f44aac272a8075eeb6779be011e572fff2",
	}
	s := newSession(wallet)
	assert.Equal(t, wallet.Account, s.caller)
	assert.Equal(t, wallet, s.wallet)
}
