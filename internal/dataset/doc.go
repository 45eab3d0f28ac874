// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dataset reads the observational data files the sampler consumes:
// the Bovy & Rix (2013) vertical force measurements and the Clemens (1985)
// and McClure-Griffiths & Dickey (2007, 2016) terminal velocity tables.
// The launcher uses these readers for preflight validation of a sweep's
// input directory; the parsing and binning follow the sampler's own
// treatment so a file that passes here will load there too.
package dataset
