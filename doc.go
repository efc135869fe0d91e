// Package strucore is a structural-bioinformatics core for comparing,
// superposing, and clustering sets of protein structures.
//
// geomkit provides the geometric primitives (Kabsch fit, rigid transforms);
// residue and tally model and reconcile per-residue input; alignment holds
// the multi-structure alignment table, its windowed scoring, and the
// split/refine machinery that improves an initial alignment; superpose
// builds a consistent multi-structure superposition over a maximum
// spanning tree of pairwise scores; cluster performs CATHSOLID-style
// hierarchical agglomerative clustering; pdbio and viewer are the external
// collaborators (structure input/output, viewer script generation); serial
// carries every value type to and from JSON.
package strucore
