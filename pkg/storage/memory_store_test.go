/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package storage_test

import (
	"fmt"
	"sync"

	. "github.com/JiaYongfei/respect/gomega"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/massenz/atm-statemachine/pkg/api"
	"github.com/massenz/atm-statemachine/pkg/atm"
	"github.com/massenz/atm-statemachine/pkg/storage"
)

var _ = Describe("InMemory Store", func() {
	var store storage.StoreManager

	BeforeEach(func() {
		store = storage.NewInMemoryStore()
		Expect(store.Health()).To(Succeed())
	})

	Context("can be used to save and retrieve a session", func() {
		const id = "lobby"

		BeforeEach(func() {
			Expect(store.CreateSession(id, 100)).ToNot(HaveOccurred())
		})
		It("will give back a Waiting ATM", func() {
			found, err := store.GetSession(id)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(Equal(atm.NewState(100)))
		})
		It("will not allow to create it twice", func() {
			err := store.CreateSession(id, 50)
			Expect(err).To(HaveOccurred())
			Expect(storage.IsAlreadyExistsErr(err)).To(BeTrue())

			found, _ := store.GetSession(id)
			Expect(found.Cash()).To(Equal(uint64(100)))
		})
		It("will allow to replace it", func() {
			state := atm.Restore(80, atm.AuthenticatingWith(42), atm.One)
			Expect(store.PutSession(id, state)).To(Succeed())
			found, err := store.GetSession(id)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(Equal(state))
		})
		It("will return an error for a non-existent id", func() {
			_, err := store.GetSession("fake")
			Expect(err).To(HaveOccurred())
			Expect(storage.IsNotFoundErr(err)).To(BeTrue())
		})
		It("will reject an empty id", func() {
			Expect(store.CreateSession("", 10)).To(HaveOccurred())
			Expect(store.PutSession("", atm.NewState(10))).To(HaveOccurred())
		})
	})

	Context("can process actions", func() {
		pin := []atm.Key{atm.Two, atm.Two}

		BeforeEach(func() {
			Expect(store.CreateSession("one", 10)).To(Succeed())
			Expect(store.CreateSession("two", 20)).To(Succeed())
		})
		It("updates the session", func() {
			state, err := store.TxProcessAction("one", atm.SwipeCard{Fingerprint: atm.Fingerprint(pin)})
			Expect(err).ToNot(HaveOccurred())
			Expect(state.Phase()).To(Equal(atm.Authenticating))

			found, _ := store.GetSession("one")
			Expect(found).To(Equal(state))
			Expect(store.GetAllInPhase(atm.Authenticating)).To(Equal([]string{"one"}))
			Expect(store.GetAllInPhase(atm.Waiting)).To(Equal([]string{"two"}))
		})
		It("withdraws cash", func() {
			actions := append([]atm.Action{atm.SwipeCard{Fingerprint: atm.Fingerprint(pin)}},
				atm.PressKeys(atm.Two, atm.Two, atm.Enter, atm.Four, atm.Enter)...)
			for _, a := range actions {
				_, err := store.TxProcessAction("two", a)
				Expect(err).ToNot(HaveOccurred())
			}
			found, _ := store.GetSession("two")
			Expect(found).To(Equal(atm.NewState(16)))
		})
		It("fails for unknown terminals", func() {
			_, err := store.TxProcessAction("three", atm.PressKey{Key: atm.One})
			Expect(storage.IsNotFoundErr(err)).To(BeTrue())
		})
		It("rejects nil actions", func() {
			_, err := store.TxProcessAction("one", nil)
			Expect(err).To(HaveOccurred())
			Expect(storage.IsNotFoundErr(err)).To(BeFalse())
		})
		It("serializes concurrent actions", func() {
			Expect(store.PutSession("one", atm.Restore(10, atm.AuthenticatingWith(1)))).To(Succeed())
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					_, err := store.TxProcessAction("one", atm.PressKey{Key: atm.Three})
					Expect(err).ToNot(HaveOccurred())
				}()
			}
			wg.Wait()
			found, _ := store.GetSession("one")
			Expect(found.RegisterLen()).To(Equal(20))
		})
	})

	Context("can be used to save and retrieve outcomes", func() {
		It("will give them back unchanged", func() {
			outcome := &api.Outcome{
				EventId:  "1234",
				Terminal: "lobby",
				Code:     api.Ok,
				Phase:    atm.Authenticated,
				Cash:     10,
			}
			Expect(store.AddOutcome("1234", outcome)).To(Succeed())
			found, err := store.GetOutcome("1234")
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(Respect(outcome))
		})
		It("will return an error for a non-existent id", func() {
			_, err := store.GetOutcome("fake")
			Expect(storage.IsNotFoundErr(err)).To(BeTrue())
		})
		It("will not store nil", func() {
			Expect(store.AddOutcome("1234", nil)).To(HaveOccurred())
		})
	})
})

var _ = Describe("Store errors", func() {
	It("should match the right error", func() {
		err := storage.NotFoundError(storage.NewKeyForSession("fake"))
		Expect(storage.IsNotFoundErr(err)).To(BeTrue())
		Expect(err.Error()).To(Equal("not found: key atm#fake"))
	})
	It("should not match the wrong error", func() {
		err := storage.AlreadyExistsError("atm#fake")
		Expect(storage.IsNotFoundErr(err)).ToNot(BeTrue())
		Expect(storage.IsNotFoundErr(fmt.Errorf("wrapped: %w", err))).ToNot(BeTrue())
		Expect(storage.IsAlreadyExistsErr(fmt.Errorf("wrapped: %w", err))).To(BeTrue())
	})
	It("builds keys", func() {
		Expect(storage.NewKeyForSession("lobby")).To(Equal("atm#lobby"))
		Expect(storage.NewKeyForOutcome("1234")).To(Equal("events:outcome#1234"))
	})
})
