// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package workerpool

import "os/exec"

func detach(*exec.Cmd) {}
