package chemjson

//Package chemjson implements the serialization and unserialization of
//core-level analysis jobs. A job is a JSON document with the atoms of
//the system (element symbol and Cartesian coordinates, in A), the energies
//of the core orbitals assigned to each atom and, optionally, a Loewdin
//population analysis. It is meant to be written by a script that parses
//the output of the QM program, which can be written in any language.
//
//	{"atoms": [{"symbol": "Pt", "coords": [0, 0, 0]}, ...],
//	 "corelevels": {"0": [-70.1, -70.3], "1": []},
//	 "populations": {"0": {"symbol": "Pt", "charge": 0.35, "spin": 0.01}}}
//
//Jobs can be compressed with zstd (.zst files) or gzip (.gz).
//chemjson also serializes the results of an analysis, so they can be
//collected by the calling program.
