// Package section defines the binary layout of a compression entity header.
//
// An entity starts with a 32-byte generic header, followed by a specific header
// whose shape depends on the data product type, followed by the compressed payload:
//
//	+------------------+---------------------------+---------------------+
//	| generic (32 B)   | specific (4, 12 or 32 B)  | payload             |
//	+------------------+---------------------------+---------------------+
//
// All fields are big-endian. ResolveVariant is the single place that decides the
// specific header variant; the Field table records for each field its offset,
// width and the variants that contain it, so accessors never compute offsets
// themselves.
//
// # Generic Header
//
//	offset  size  field
//	0       4     version_id
//	4       3     cmp_ent_size
//	7       3     original_size
//	10      6     start timestamp (coarse u32, fine u16)
//	16      6     end timestamp (coarse u32, fine u16)
//	22      2     data_type, bit 15 is the raw bit
//	24      1     cmp_mode
//	25      1     model_value
//	26      2     model_id
//	28      1     model_counter
//	29      1     max_used_bits_version
//	30      2     lossy_cmp_par
//
// # Specific Headers
//
// Imagette (4 bytes): spill u16, golomb_par u8, spare u8.
//
// Adaptive imagette (12 bytes): spill u16, golomb_par u8, ap1_spill u16,
// ap1_golomb_par u8, ap2_spill u16, ap2_golomb_par u8, spare u8, spare u16.
//
// Non-imagette (32 bytes): six pairs of spill_n u24 and cmp_par_n u16, spare u16.
package section
