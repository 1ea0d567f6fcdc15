// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dom provides a minimal observable document used as the theme signal.
//
// Only what the chart styler needs is modeled: a root element with
// attributes, a class token list, and mutation observers that receive
// batches of attribute records.
//
// # Delivery
//
// Mutations are queued per observer and delivered asynchronously by one
// dispatcher goroutine per Document, so observer callbacks never run
// concurrently with each other. Flush blocks until everything queued so far
// has been delivered:
//
//	doc := dom.NewDocument()
//	defer doc.Close()
//
//	obs := dom.NewMutationObserver(func(recs []dom.MutationRecord, _ *dom.MutationObserver) {
//	    for _, r := range recs {
//	        fmt.Println(r.AttributeName, r.OldValue)
//	    }
//	})
//	_ = obs.Observe(doc.Root(), dom.ObserveOptions{AttributeFilter: []string{"class"}})
//
//	doc.Root().ClassList().Add("dark")
//	doc.Flush()
package dom
