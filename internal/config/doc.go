// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config reads and writes YAML bundles of command definitions.
//
// A bundle looks like this:
//
//	name: team commands
//	description: shared by the platform team
//	commands:
//	  - name: Deploy App
//	    alias: deploy
//	    steps:
//	      - make build
//	      - ./deploy.sh
//
// Ids, creation times and usage counts are not part of a bundle; they belong to the local store.
package config
