// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package alias turns display names into shell-safe aliases and checks them
// against reserved command names, existing aliases and executables on the PATH.
package alias
