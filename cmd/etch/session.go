package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/viper"

	"etch/engine/actors"
	"etch/engine/library"
	"etch/messaging/nostrevent"
	"etch/messaging/relays"
	"etch/state/audit"
	"etch/state/posts"
	"etch/state/registry"
)

// session is everything a command needs: the loaded registry and the local wallet. The caller is
// always the wallet's account, since every write carries an event signed with its key.
type session struct {
	service *posts.Service
	wallet  library.Wallet
	caller  library.Account
	closers []func()
}

func openSession(variantFlag string) (*session, error) {
	// Various aspect of this application require global and local settings. To keep things
	// clean and tidy we put these settings in a Viper configuration.
	conf := viper.New()
	actors.InitConfig(conf)
	actors.SetConfig(conf)

	wallet, err := actors.MyWallet()
	if err != nil {
		return nil, err
	}
	variantName := conf.GetString("variant")
	if len(variantFlag) > 0 {
		variantName = variantFlag
	}
	variant, err := registry.ParseVariant(variantName)
	if err != nil {
		return nil, err
	}

	s := newSession(wallet)

	var sinks []audit.Sink
	if conf.GetBool("auditFile") {
		sinks = append(sinks, audit.NewFileSink(actors.Directory("audit"), "pubevents.jsonl"))
	}
	if urls := conf.GetStringSlice("relays"); !conf.GetBool("doNotPublish") && len(urls) > 0 {
		if sink, ok := s.startRelaySink(urls); ok {
			sinks = append(sinks, sink)
		}
	}

	s.service, err = posts.New(posts.Options{
		Variant: variant,
		Admin:   wallet.Account,
		Sinks:   sinks,
		Store:   posts.NewFlatFileStore(actors.Directory("posts"), conf.GetString("registryName")),
	})
	if err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func newSession(wallet library.Wallet) *session {
	return &session{wallet: wallet, caller: wallet.Account}
}

func (s *session) startRelaySink(urls []string) (*relays.Sink, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	publish, closeRelays, err := relays.Connect(ctx, urls)
	if err != nil {
		library.LogCLI(err.Error(), 2)
		return nil, false
	}
	sink := relays.NewSink(publish)
	actors.GetWaitGroup().Add(1)
	go func() {
		defer actors.GetWaitGroup().Done()
		sink.Run(actors.GetTerminateChan())
	}()
	s.closers = append(s.closers, func() {
		close(actors.GetTerminateChan())
		actors.GetWaitGroup().Wait()
		closeRelays()
	})
	return sink, true
}

func (s *session) close() {
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
}

// eventOptions describe the nostr event that accompanies a write.
type eventOptions struct {
	file    string
	content string
	kind    int
	tags    []string
}

// payload either loads an externally signed event or builds and signs one with the local wallet.
// Both are verified here, before anything reaches the registry.
func (s *session) payload(opts eventOptions) (audit.Payload, error) {
	var e nostr.Event
	if len(opts.file) > 0 {
		loaded, err := readEvent(opts.file)
		if err != nil {
			return audit.Payload{}, err
		}
		e = loaded
	} else {
		e = nostr.Event{
			CreatedAt: nostr.Timestamp(time.Now().Unix()),
			Kind:      opts.kind,
			Tags:      library.ParseTags(opts.tags),
			Content:   opts.content,
		}
		if err := nostrevent.Sign(&e, s.wallet.PrivateKey); err != nil {
			return audit.Payload{}, fmt.Errorf("signing event: %w", err)
		}
	}
	if err := nostrevent.Verify(e); err != nil {
		return audit.Payload{}, err
	}
	return nostrevent.ToPayload(e)
}
