package semantic

import (
	"github.com/modelchk/go-utap/pkg/position"
)

// Category is appended to every diagnostic the checker emits.
const Category = "(typechecking)"

// Diagnostic identifiers. The $-prefixed tokens are a public contract:
// downstream localization tables and test suites match them literally, so
// they are emitted verbatim and never reworded.
const (
	// Type shape.
	MsgIntegerExpected   = "$Integer_expected"
	MsgBooleanExpected   = "$Boolean_expected"
	MsgNumberExpected    = "$Number_expected"
	MsgChannelExpected   = "$Channel_expected"
	MsgClockExpected     = "$Clock_expected"
	MsgIncompatibleType  = "$Incompatible_type"
	MsgTypeError         = "$Type_error"
	MsgInvalidInvariant  = "$Invalid_invariant"
	MsgInvalidGuard      = "$Invalid_guard"
	MsgInvalidReturnType = "$Invalid_return_type"

	// Prefixes and declarations.
	MsgUrgentOnlyLocChan        = "$Prefix_urgent_only_allowed_for_locations_and_channels"
	MsgBroadcastOnlyChan        = "$Prefix_broadcast_only_allowed_for_channels"
	MsgCommittedOnlyLoc         = "$Prefix_committed_only_allowed_for_locations"
	MsgHybridOnlyClocks         = "$Prefix_hybrid_only_allowed_for_clocks"
	MsgConstNotClocks           = "$Prefix_const_not_allowed_for_clocks"
	MsgMetaNotClocks            = "$Prefix_meta_not_allowed_for_clocks"
	MsgRefNotAllowed            = "$Reference_to_this_type_not_allowed"
	MsgInvalidArraySize         = "$Invalid_array_size"
	MsgNotAllowedInStruct       = "$This_type_cannot_be_declared_inside_a_struct"
	MsgNotConstOrMeta           = "$Cannot_be_declared_const_or_meta"
	MsgConstantsNeedInit        = "$Constants_must_have_an_initialiser"
	MsgRangeExpected            = "$Range_expected"
	MsgScalarOrIntExpected      = "$Scalar_set_or_integer_expected"
	MsgReturnStmtExpected       = "$Return_statement_expected"
	MsgFreeParamBoundedOrScalar = "$Free_process_parameters_must_be_a_bounded_integer_or_a_scalar"
	MsgFreeParamInArraySize     = "$Free_process_parameters_cannot_be_used_directly_or_indirectly_in_an_array_declaration"

	// Side effects.
	MsgInvariantSideEffect = "$Invariant_must_be_side_effect_free"
	MsgGuardSideEffect     = "$Guard_must_be_side_effect_free"
	MsgSyncSideEffect      = "$Synchronisation_must_be_side_effect_free"
	MsgAssertionSideEffect = "$Assertion_must_be_side_effect_free"
	MsgPropertySideEffect  = "$Property_must_be_side_effect_free"
	MsgInitSideEffect      = "$Initialiser_must_be_side_effect_free"
	MsgArgumentSideEffect  = "$Argument_must_be_side_effect_free"
	MsgProbSideEffect      = "$Probability_must_be_side_effect_free"
	MsgConditionSideEffect = "$Condition_must_be_side_effect_free"
	MsgMessageSideEffect   = "$Message_must_be_side_effect_free"
	MsgIndexSideEffect     = "$Index_must_be_side_effect_free"
	MsgExprSideEffect      = "$Expression_must_be_side_effect_free"

	// Compile time.
	MsgNotComputable = "$Must_be_computable_at_compile_time"

	// Assignments and lvalues.
	MsgLHSExpected          = "$Left_hand_side_value_expected"
	MsgInvalidAssignment    = "$Invalid_assignment_expression"
	MsgIncompatibleArg      = "$Incompatible_argument"
	MsgIncompatibleInlineIf = "$Incompatible_arguments_to_inline_if"
	MsgUniqueReference      = "$Reference_must_be_a_unique_reference"

	// Initialisers.
	MsgFieldNameInArray     = "$Field_name_not_allowed_in_array_initialiser"
	MsgUnknownField         = "$Unknown_field"
	MsgTooManyElements      = "$Too_many_elements_in_initialiser"
	MsgMultipleInitForField = "$Multiple_initialisers_for_field"
	MsgIncompleteInit       = "$Incomplete_initialiser"
	MsgInvalidInit          = "$Invalid_initialiser"

	// Invariants and rates.
	MsgOneCostRate = "$Only_one_cost_rate_is_allowed"

	// Properties and games.
	MsgPropertyMustBeFormula  = "$Property_must_be_a_valid_formula"
	MsgNestingPathQuantifiers = "$Nesting_of_path_quantifiers_is_not_allowed"
	MsgClockBoundStrictness   = "$Clock_lower_bound_must_be_weak_and_upper_bound_strict"
	MsgClockDifferences       = "$Clock_differences_are_not_supported"
	MsgCompositionExpected    = "$Composition_of_processes_expected"
	MsgListOfChannels         = "$List_of_channels_expected"
	MsgInvalidRunCount        = "$Invalid_run_count"
	MsgMitlInsideQuantifier   = "$MITL_operators_are_not_allowed_inside_quantified_formulas"

	// Dynamic templates.
	MsgSpawnNonDynamic    = "$Appears_as_an_attempt_to_spawn_a_non_dynamic_template"
	MsgTemplateNotDefined = "$Template_is_only_declared_not_defined"
	MsgNotDynamicTemplate = "$Not_a_dynamic_template"
	MsgExitOnlyDynamic    = "$Exit_can_only_be_used_in_templates_declared_as_dynamic"
	MsgDynamicOnlyOnEdges = "$Dynamic_constructs_are_only_allowed_on_edges"

	// Synchronisation usage.
	MsgAssumedIOFoundCSP = "$Assumed_IO_but_found_CSP_synchronization"
	MsgAssumedCSPFoundIO = "$Assumed_CSP_but_found_IO_synchronization"
	MsgSyncMixed         = "$CSP_and_IO_synchronisations_cannot_be_mixed"

	// Warnings.
	MsgNoEffect              = "$Expression_does_not_have_any_effect"
	MsgClockGuardUrgent      = "$Clock_guards_are_not_allowed_on_urgent_edges"
	MsgStrictBoundsUrgent    = "$Strict_bounds_on_urgent_edges_may_not_make_sense"
	MsgOutputsUncontrollable = "$Outputs_should_be_uncontrollable_for_refinement_checking"
	MsgInputsControllable    = "$Inputs_should_be_controllable_for_refinement_checking"
	MsgStrictInvariant       = "$Strict_invariant"
	MsgSMCDeterministicInput = "$SMC_requires_input_edges_to_be_deterministic"
)

// Severity labels a catalog entry.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// MessageInfo is one entry of the diagnostic catalog.
type MessageInfo struct {
	ID       string
	Severity Severity
}

// Messages returns the full diagnostic catalog in a stable order, for the
// CLI and for downstream localization tables.
func Messages() []MessageInfo {
	errs := []string{
		MsgIntegerExpected, MsgBooleanExpected, MsgNumberExpected,
		MsgChannelExpected, MsgClockExpected, MsgIncompatibleType,
		MsgTypeError, MsgInvalidInvariant, MsgInvalidGuard,
		MsgInvalidReturnType,
		MsgUrgentOnlyLocChan, MsgBroadcastOnlyChan, MsgCommittedOnlyLoc,
		MsgHybridOnlyClocks, MsgConstNotClocks, MsgMetaNotClocks,
		MsgRefNotAllowed, MsgInvalidArraySize, MsgNotAllowedInStruct,
		MsgNotConstOrMeta, MsgConstantsNeedInit, MsgRangeExpected,
		MsgScalarOrIntExpected, MsgReturnStmtExpected,
		MsgFreeParamBoundedOrScalar, MsgFreeParamInArraySize,
		MsgInvariantSideEffect, MsgGuardSideEffect, MsgSyncSideEffect,
		MsgAssertionSideEffect, MsgPropertySideEffect, MsgInitSideEffect,
		MsgArgumentSideEffect, MsgProbSideEffect, MsgConditionSideEffect,
		MsgMessageSideEffect, MsgIndexSideEffect, MsgExprSideEffect,
		MsgNotComputable,
		MsgLHSExpected, MsgInvalidAssignment, MsgIncompatibleArg,
		MsgIncompatibleInlineIf, MsgUniqueReference,
		MsgFieldNameInArray, MsgUnknownField, MsgTooManyElements,
		MsgMultipleInitForField, MsgIncompleteInit, MsgInvalidInit,
		MsgOneCostRate,
		MsgPropertyMustBeFormula, MsgNestingPathQuantifiers,
		MsgClockBoundStrictness, MsgClockDifferences,
		MsgCompositionExpected, MsgListOfChannels, MsgInvalidRunCount,
		MsgMitlInsideQuantifier,
		MsgSpawnNonDynamic, MsgTemplateNotDefined, MsgNotDynamicTemplate,
		MsgExitOnlyDynamic, MsgDynamicOnlyOnEdges,
		MsgAssumedIOFoundCSP, MsgAssumedCSPFoundIO, MsgSyncMixed,
	}
	warns := []string{
		MsgNoEffect, MsgClockGuardUrgent, MsgStrictBoundsUrgent,
		MsgOutputsUncontrollable, MsgInputsControllable,
		MsgStrictInvariant, MsgSMCDeterministicInput,
	}
	out := make([]MessageInfo, 0, len(errs)+len(warns))
	for _, id := range errs {
		out = append(out, MessageInfo{ID: id, Severity: SeverityError})
	}
	for _, id := range warns {
		out = append(out, MessageInfo{ID: id, Severity: SeverityWarning})
	}
	return out
}

// handleError appends an error to the system buffer.
func (tc *TypeChecker) handleError(pos position.Position, msg string) {
	tc.system.AddError(pos, msg, Category)
}

// handleWarning appends a warning to the system buffer.
func (tc *TypeChecker) handleWarning(pos position.Position, msg string) {
	tc.system.AddWarning(pos, msg, Category)
}
